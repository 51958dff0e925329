package admin

import (
	"context"
	"errors"
	"testing"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
)

type stubReservationProvider struct {
	reservations map[int]domain.Reservation
	details      map[int][]domain.ReservationDetail
	byEmail      map[string][]domain.Reservation
	bySlot       map[domain.SlotSelection]domain.Reservation

	cancelled []int
	cancelErr error
}

func (s *stubReservationProvider) ReservationDetails(_ context.Context, id int) (domain.Reservation, []domain.ReservationDetail, error) {
	reservation, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, nil, &providers.APIError{StatusCode: 404, Detail: "Reserva no encontrada"}
	}
	return reservation, s.details[id], nil
}

func (s *stubReservationProvider) ReservationsByEmail(_ context.Context, email string) ([]domain.Reservation, error) {
	return s.byEmail[email], nil
}

func (s *stubReservationProvider) ReservationBySlot(_ context.Context, slot domain.SlotSelection) (domain.Reservation, error) {
	reservation, ok := s.bySlot[slot]
	if !ok {
		return domain.Reservation{}, &providers.APIError{StatusCode: 404, Detail: "Reserva no encontrada"}
	}
	return reservation, nil
}

func (s *stubReservationProvider) CancelReservation(_ context.Context, id int) error {
	if s.cancelErr != nil {
		return s.cancelErr
	}
	s.cancelled = append(s.cancelled, id)
	return nil
}

func newStubReservationProvider() *stubReservationProvider {
	pending := domain.Reservation{ID: 1, ClientID: 3, Amount: "1700.00", Status: domain.ReservationPending}
	paid := domain.Reservation{ID: 2, ClientID: 3, Amount: "2500.00", Status: domain.ReservationPaid}
	return &stubReservationProvider{
		reservations: map[int]domain.Reservation{1: pending, 2: paid},
		details: map[int][]domain.ReservationDetail{
			1: {{ID: 10, ReservationID: 1, FieldID: 1, ScheduleID: 5, ItemTotal: "1700.00"}},
		},
		byEmail: map[string][]domain.Reservation{
			"ana@example.com": {pending, paid},
		},
		bySlot: map[domain.SlotSelection]domain.Reservation{
			{FieldID: 1, ScheduleID: 5, Date: "2026-03-01"}: pending,
		},
	}
}

func TestReservationFindByID(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	reservation, details, err := c.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reservation.ID != 1 || len(details) != 1 {
		t.Errorf("unexpected result %+v %+v", reservation, details)
	}
}

func TestReservationFindByIDValidatesInput(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	if _, _, err := c.FindByID(context.Background(), 0); !errors.Is(err, errReservationID) {
		t.Fatalf("expected %v, got %v", errReservationID, err)
	}
}

func TestReservationFindByIDNotFound(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	_, _, err := c.FindByID(context.Background(), 99)
	if err == nil || err.Error() != "No se encontró una reserva con ese ID" {
		t.Fatalf("expected not-found message, got %v", err)
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatal("lookup misses must be typed as NotFoundError")
	}
}

func TestReservationFindByEmail(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	reservations, err := c.FindByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if len(reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(reservations))
	}
}

func TestReservationFindByEmailEmptyListIsNotFound(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	_, err := c.FindByEmail(context.Background(), "nadie@example.com")
	if !errors.Is(err, errReservationsNotFound) {
		t.Fatalf("expected %v, got %v", errReservationsNotFound, err)
	}
}

func TestReservationFindByEmailRequiresEmail(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	if _, err := c.FindByEmail(context.Background(), " "); !errors.Is(err, errReservationEmail) {
		t.Fatalf("expected %v, got %v", errReservationEmail, err)
	}
}

func TestReservationFindBySlot(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	reservation, err := c.FindBySlot(context.Background(), domain.SlotSelection{FieldID: 1, ScheduleID: 5, Date: "2026-03-01"})
	if err != nil {
		t.Fatalf("FindBySlot: %v", err)
	}
	if reservation.ID != 1 {
		t.Errorf("unexpected reservation %+v", reservation)
	}
}

func TestReservationFindBySlotValidatesInput(t *testing.T) {
	c := NewReservationController(newStubReservationProvider())

	if _, err := c.FindBySlot(context.Background(), domain.SlotSelection{FieldID: 1}); !errors.Is(err, errSlotIncomplete) {
		t.Fatalf("expected %v, got %v", errSlotIncomplete, err)
	}
}

func TestReservationCancelOnlyPending(t *testing.T) {
	provider := newStubReservationProvider()
	c := NewReservationController(provider)

	if err := c.Cancel(context.Background(), 2); !errors.Is(err, errNotCancelable) {
		t.Fatalf("expected %v, got %v", errNotCancelable, err)
	}
	if len(provider.cancelled) != 0 {
		t.Error("a paid reservation must never reach the upstream delete")
	}

	if err := c.Cancel(context.Background(), 1); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(provider.cancelled) != 1 || provider.cancelled[0] != 1 {
		t.Fatalf("unexpected cancellations %v", provider.cancelled)
	}
}
