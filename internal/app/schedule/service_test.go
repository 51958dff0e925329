package schedule

import (
	"context"
	"errors"
	"strings"
	"testing"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/grid"
	"donbalon-gateway/internal/store"
	"donbalon-gateway/internal/testutil"
)

type stubProvider struct {
	fields     []domain.Field
	fieldTypes []domain.FieldType
	slots      []domain.ScheduleSlot
	turnos     []domain.Turno
	services   []domain.Service
	methods    []domain.PaymentMethod

	turnosErr      error
	maintenanceErr error

	maintenanceCalls []string
}

func (s *stubProvider) FetchFields(context.Context) ([]domain.Field, error) { return s.fields, nil }
func (s *stubProvider) FetchFieldTypes(context.Context) ([]domain.FieldType, error) {
	return s.fieldTypes, nil
}
func (s *stubProvider) FetchScheduleSlots(context.Context) ([]domain.ScheduleSlot, error) {
	return s.slots, nil
}
func (s *stubProvider) FetchTurnos(context.Context) ([]domain.Turno, error) {
	return s.turnos, s.turnosErr
}
func (s *stubProvider) FetchServices(context.Context) ([]domain.Service, error) {
	return s.services, nil
}
func (s *stubProvider) FetchFieldDetail(context.Context, int) (domain.FieldDetail, error) {
	return domain.FieldDetail{}, nil
}
func (s *stubProvider) FetchPaymentMethods(context.Context) ([]domain.PaymentMethod, error) {
	return s.methods, nil
}

func (s *stubProvider) ExpirePastTurnos(context.Context) error {
	s.maintenanceCalls = append(s.maintenanceCalls, "expirar-pasados")
	return s.maintenanceErr
}

func (s *stubProvider) CreateTodayTurnos(context.Context) error {
	s.maintenanceCalls = append(s.maintenanceCalls, "crear-del-dia")
	return s.maintenanceErr
}

func (s *stubProvider) FinalizeExpiredReservations(context.Context) error {
	s.maintenanceCalls = append(s.maintenanceCalls, "finalizar-vencidas")
	return s.maintenanceErr
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		fields:     []domain.Field{{ID: 1, Name: "Cancha 1", TypeID: 1}},
		fieldTypes: []domain.FieldType{{ID: 1, Description: "Fútbol 5", HourlyPrice: "1500.00"}},
		slots:      []domain.ScheduleSlot{{ID: 10, StartTime: "08:00", EndTime: "09:00"}},
		turnos: []domain.Turno{
			{FieldID: 1, ScheduleID: 10, Date: "2026-03-01", Status: "Disponible"},
		},
		services: []domain.Service{{ID: 1, Description: "Iluminación", Cost: "200.00"}},
		methods:  []domain.PaymentMethod{{ID: 1, Description: "Efectivo"}},
	}
}

func TestRefreshReplacesStore(t *testing.T) {
	provider := newStubProvider()
	st := store.NewMemoryStore()
	svc := NewService(provider, st, nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if got := st.Fields(); len(got) != 1 || got[0].Name != "Cancha 1" {
		t.Fatalf("unexpected fields %+v", got)
	}
	if got := st.Turnos(); len(got) != 1 {
		t.Fatalf("unexpected turnos %+v", got)
	}
	if got := svc.PaymentMethods(); len(got) != 1 {
		t.Fatalf("unexpected payment methods %+v", got)
	}
}

func TestRefreshRunsMaintenanceInOrder(t *testing.T) {
	provider := newStubProvider()
	svc := NewService(provider, store.NewMemoryStore(), nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	want := []string{"expirar-pasados", "crear-del-dia", "finalizar-vencidas"}
	if len(provider.maintenanceCalls) != len(want) {
		t.Fatalf("expected %v, got %v", want, provider.maintenanceCalls)
	}
	for i := range want {
		if provider.maintenanceCalls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, provider.maintenanceCalls)
		}
	}
}

func TestRefreshSurvivesMaintenanceFailure(t *testing.T) {
	provider := newStubProvider()
	provider.maintenanceErr = errors.New("sweep failed")
	logger, buf := testutil.NewBufferLogger()
	st := store.NewMemoryStore()
	svc := NewService(provider, st, logger)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("maintenance failures must not abort the refresh: %v", err)
	}
	if len(st.Fields()) != 1 {
		t.Fatal("reference data should still be loaded")
	}
	if !strings.Contains(buf.String(), "maintenance trigger failed") {
		t.Error("maintenance failures should be logged")
	}
}

func TestRefreshFailsOnFetchError(t *testing.T) {
	provider := newStubProvider()
	provider.turnosErr = errors.New("boom")
	st := store.NewMemoryStore()
	st.Replace(store.Snapshot{Fields: []domain.Field{{ID: 9, Name: "Vieja"}}})
	svc := NewService(provider, st, nil)

	err := svc.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected Refresh to fail")
	}
	if !strings.Contains(err.Error(), "refreshing turnos") {
		t.Errorf("unexpected error %v", err)
	}
	// The previous snapshot stays intact on a failed refresh.
	if got := st.Fields(); len(got) != 1 || got[0].ID != 9 {
		t.Errorf("failed refresh must not touch the store, got %+v", got)
	}
}

func TestGridBuildsFromSnapshot(t *testing.T) {
	provider := newStubProvider()
	svc := NewService(provider, store.NewMemoryStore(), nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	g := svc.Grid("2026-03-01")

	if g.Date != "2026-03-01" || len(g.Rows) != 1 {
		t.Fatalf("unexpected grid %+v", g)
	}
	if g.Rows[0].Cells[0].State != grid.StateAvailable {
		t.Errorf("expected the seeded turno to render available, got %s", g.Rows[0].Cells[0].State)
	}
}
