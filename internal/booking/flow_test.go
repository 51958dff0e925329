package booking

import (
	"context"
	"errors"
	"testing"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
)

type stubProvider struct {
	methods    []domain.PaymentMethod
	methodsErr error
	details    map[int]domain.FieldDetail
	detailErr  error
	created    domain.Reservation
	createErr  error

	createCalls int
	lastRequest domain.ReservationRequest
}

func (s *stubProvider) FetchPaymentMethods(context.Context) ([]domain.PaymentMethod, error) {
	return s.methods, s.methodsErr
}

func (s *stubProvider) FetchFieldDetail(_ context.Context, fieldID int) (domain.FieldDetail, error) {
	if s.detailErr != nil {
		return domain.FieldDetail{}, s.detailErr
	}
	detail, ok := s.details[fieldID]
	if !ok {
		return domain.FieldDetail{}, &providers.APIError{StatusCode: 404, Detail: "Cancha no encontrada"}
	}
	return detail, nil
}

func (s *stubProvider) CreateReservation(_ context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	s.createCalls++
	s.lastRequest = req
	return s.created, s.createErr
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		methods: []domain.PaymentMethod{
			{ID: 1, Description: "Efectivo"},
			{ID: 2, Description: "Tarjeta de Crédito"},
		},
		details: map[int]domain.FieldDetail{
			1: {FieldID: 1, Name: "Cancha 1", TotalPrice: "1700.00"},
			2: {FieldID: 2, Name: "Cancha 2", TotalPrice: "2500.00"},
		},
		created: domain.Reservation{ID: 42, ClientID: 7, Amount: "1700.00", Status: domain.ReservationPending},
	}
}

func selections() []domain.SlotSelection {
	return []domain.SlotSelection{
		{FieldID: 1, ScheduleID: 10, Date: "2026-03-01"},
		{FieldID: 1, ScheduleID: 11, Date: "2026-03-01"},
		{FieldID: 2, ScheduleID: 10, Date: "2026-03-01"},
	}
}

func TestNewFlowRejectsEmptySelection(t *testing.T) {
	if _, err := NewFlow(newStubProvider(), 7, nil); err == nil {
		t.Fatal("expected error for empty selection")
	} else if err.Error() != "Debe seleccionar al menos un turno" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoadMovesToMethodSelection(t *testing.T) {
	flow, err := NewFlow(newStubProvider(), 7, selections())
	if err != nil {
		t.Fatalf("NewFlow: %v", err)
	}

	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if flow.State() != StateAwaitingMethod {
		t.Fatalf("expected %s, got %s", StateAwaitingMethod, flow.State())
	}
	if len(flow.PaymentMethods()) != 2 {
		t.Fatalf("expected 2 payment methods, got %d", len(flow.PaymentMethods()))
	}
}

func TestLoadFailureMarksFlowFailed(t *testing.T) {
	provider := newStubProvider()
	provider.methodsErr = errors.New("upstream down")
	flow, _ := NewFlow(provider, 7, selections())

	if err := flow.Load(context.Background()); err == nil {
		t.Fatal("expected Load to fail")
	}
	if flow.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", flow.State())
	}
	if flow.Failure() != "Error al cargar información de pago" {
		t.Fatalf("unexpected failure message %q", flow.Failure())
	}
}

func TestSummaryMultipliesPerFieldCounts(t *testing.T) {
	flow, _ := NewFlow(newStubProvider(), 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	summary := flow.Summary()

	if len(summary.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(summary.Lines))
	}
	first := summary.Lines[0]
	if first.FieldID != 1 || first.Count != 2 || first.Subtotal != "3400.00" {
		t.Errorf("unexpected first line %+v", first)
	}
	second := summary.Lines[1]
	if second.FieldID != 2 || second.Count != 1 || second.Subtotal != "2500.00" {
		t.Errorf("unexpected second line %+v", second)
	}
	if summary.Total != "5900.00" {
		t.Errorf("expected total 5900.00, got %s", summary.Total)
	}
}

func TestSubmitRejectsUnknownMethod(t *testing.T) {
	provider := newStubProvider()
	flow, _ := NewFlow(provider, 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err := flow.Submit(context.Background(), 99, nil)
	if err == nil || err.Error() != "Debe seleccionar un método de pago" {
		t.Fatalf("unexpected error %v", err)
	}
	if provider.createCalls != 0 {
		t.Error("reservation must not be created for an unknown method")
	}
}

func TestSubmitCardMethodRequiresValidCard(t *testing.T) {
	flow, _ := NewFlow(newStubProvider(), 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := flow.Submit(context.Background(), 2, nil); !errors.Is(err, ErrCardNumber) {
		t.Fatalf("expected missing card to fail with %v, got %v", ErrCardNumber, err)
	}

	badExpiry := &Card{Number: "4111111111111111", Expiry: "13/2027", CVV: "123"}
	if _, err := flow.Submit(context.Background(), 2, badExpiry); !errors.Is(err, ErrCardExpiry) {
		t.Fatalf("expected %v, got %v", ErrCardExpiry, err)
	}
}

func TestSubmitCashMethodSkipsCardValidation(t *testing.T) {
	provider := newStubProvider()
	flow, _ := NewFlow(provider, 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	reservation, err := flow.Submit(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.State() != StateConfirmed {
		t.Fatalf("expected confirmed, got %s", flow.State())
	}
	if reservation.ID != 42 {
		t.Errorf("unexpected reservation %+v", reservation)
	}
	if provider.lastRequest.ClientID != 7 || provider.lastRequest.PaymentMethodID != 1 {
		t.Errorf("unexpected request %+v", provider.lastRequest)
	}
	if len(provider.lastRequest.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(provider.lastRequest.Items))
	}
}

func TestSubmitFailureKeepsUpstreamDetail(t *testing.T) {
	provider := newStubProvider()
	provider.createErr = &providers.APIError{StatusCode: 409, Detail: "El turno ya no está disponible"}
	flow, _ := NewFlow(provider, 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := flow.Submit(context.Background(), 1, nil); err == nil {
		t.Fatal("expected Submit to fail")
	}
	if flow.State() != StateFailed {
		t.Fatalf("expected failed, got %s", flow.State())
	}
	if flow.Failure() != "El turno ya no está disponible" {
		t.Fatalf("expected upstream detail, got %q", flow.Failure())
	}
}

func TestSubmitFallbackMessageForTransportFailure(t *testing.T) {
	provider := newStubProvider()
	provider.createErr = errors.New("connection refused")
	flow, _ := NewFlow(provider, 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := flow.Submit(context.Background(), 1, nil); err == nil {
		t.Fatal("expected Submit to fail")
	}
	if flow.Failure() != "Error al procesar la reserva" {
		t.Fatalf("expected fallback message, got %q", flow.Failure())
	}
}

func TestSubmitRetryAllowedAfterFailure(t *testing.T) {
	provider := newStubProvider()
	provider.createErr = &providers.APIError{StatusCode: 502, Detail: ""}
	flow, _ := NewFlow(provider, 7, selections())
	if err := flow.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := flow.Submit(context.Background(), 1, nil); err == nil {
		t.Fatal("expected first Submit to fail")
	}

	provider.createErr = nil
	if _, err := flow.Submit(context.Background(), 1, nil); err != nil {
		t.Fatalf("retry after failure should be allowed: %v", err)
	}
	if flow.State() != StateConfirmed {
		t.Fatalf("expected confirmed after retry, got %s", flow.State())
	}
}
