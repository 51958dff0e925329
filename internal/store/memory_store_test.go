package store

import (
	"testing"

	"donbalon-gateway/internal/domain"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Fields: []domain.Field{
			{ID: 1, Name: "Cancha 1", TypeID: 1},
			{ID: 2, Name: "Cancha 2", TypeID: 2},
		},
		FieldTypes:     []domain.FieldType{{ID: 1, Description: "Fútbol 5"}},
		ScheduleSlots:  []domain.ScheduleSlot{{ID: 10, StartTime: "08:00", EndTime: "09:00"}},
		Turnos:         []domain.Turno{{FieldID: 1, ScheduleID: 10, Date: "2026-03-01", Status: "Disponible"}},
		Services:       []domain.Service{{ID: 1, Description: "Iluminación", Cost: "200.00"}},
		PaymentMethods: []domain.PaymentMethod{{ID: 1, Description: "Efectivo"}},
	}
}

func TestReplaceAndSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.Replace(sampleSnapshot())

	snap := s.Snapshot()
	if len(snap.Fields) != 2 || len(snap.Turnos) != 1 || len(snap.PaymentMethods) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestReplaceSwapsEverything(t *testing.T) {
	s := NewMemoryStore()
	s.Replace(sampleSnapshot())

	s.Replace(Snapshot{Fields: []domain.Field{{ID: 9, Name: "Nueva"}}})

	if got := s.Fields(); len(got) != 1 || got[0].ID != 9 {
		t.Fatalf("unexpected fields %+v", got)
	}
	if got := s.Turnos(); got != nil {
		t.Fatalf("stale turnos survived the replace: %+v", got)
	}
}

func TestSnapshotCopiesAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	s.Replace(sampleSnapshot())

	fields := s.Fields()
	fields[0].Name = "mutated"

	if got := s.Fields(); got[0].Name != "Cancha 1" {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestFieldByID(t *testing.T) {
	s := NewMemoryStore()
	s.Replace(sampleSnapshot())

	field, ok := s.FieldByID(2)
	if !ok || field.Name != "Cancha 2" {
		t.Fatalf("unexpected field %+v ok=%v", field, ok)
	}
	if _, ok := s.FieldByID(99); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestEmptyStoreSnapshot(t *testing.T) {
	s := NewMemoryStore()

	snap := s.Snapshot()
	if snap.Fields != nil || snap.Turnos != nil {
		t.Fatalf("empty store should return nil slices, got %+v", snap)
	}
}
