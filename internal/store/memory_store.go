package store

import (
	"sync"

	"donbalon-gateway/internal/domain"
)

// MemoryStore keeps a thread-safe snapshot of the booking reference data
// in memory. Each refresh cycle replaces the whole snapshot.
type MemoryStore struct {
	mu             sync.RWMutex
	fields         []domain.Field
	fieldTypes     []domain.FieldType
	scheduleSlots  []domain.ScheduleSlot
	turnos         []domain.Turno
	services       []domain.Service
	paymentMethods []domain.PaymentMethod
}

// Snapshot bundles one consistent view of the reference data.
type Snapshot struct {
	Fields         []domain.Field
	FieldTypes     []domain.FieldType
	ScheduleSlots  []domain.ScheduleSlot
	Turnos         []domain.Turno
	Services       []domain.Service
	PaymentMethods []domain.PaymentMethod
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace swaps the stored reference data with a new snapshot.
func (s *MemoryStore) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields = snap.Fields
	s.fieldTypes = snap.FieldTypes
	s.scheduleSlots = snap.ScheduleSlots
	s.turnos = snap.Turnos
	s.services = snap.Services
	s.paymentMethods = snap.PaymentMethods
}

// Snapshot returns a consistent copy of everything in the store.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Fields:         copySlice(s.fields),
		FieldTypes:     copySlice(s.fieldTypes),
		ScheduleSlots:  copySlice(s.scheduleSlots),
		Turnos:         copySlice(s.turnos),
		Services:       copySlice(s.services),
		PaymentMethods: copySlice(s.paymentMethods),
	}
}

// Fields returns a copy of the current fields.
func (s *MemoryStore) Fields() []domain.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.fields)
}

// FieldTypes returns a copy of the current field types.
func (s *MemoryStore) FieldTypes() []domain.FieldType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.fieldTypes)
}

// ScheduleSlots returns a copy of the current schedule definitions.
func (s *MemoryStore) ScheduleSlots() []domain.ScheduleSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.scheduleSlots)
}

// Turnos returns a copy of the current turnos.
func (s *MemoryStore) Turnos() []domain.Turno {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.turnos)
}

// Services returns a copy of the current services.
func (s *MemoryStore) Services() []domain.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.services)
}

// PaymentMethods returns a copy of the current payment methods.
func (s *MemoryStore) PaymentMethods() []domain.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.paymentMethods)
}

// FieldByID looks a field up in the current snapshot.
func (s *MemoryStore) FieldByID(id int) (domain.Field, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.fields {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Field{}, false
}

func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
