package fixture

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/timeutil"
)

// Provider simulates the booking API in memory, useful for local runs
// and tests. State changes (reservations, turno status, admin edits) are
// kept until the process exits.
type Provider struct {
	mu  sync.Mutex
	now func() time.Time

	fields     []domain.Field
	inactive   map[int]bool
	fieldTypes []domain.FieldType
	slots      []domain.ScheduleSlot
	slotsOff   map[int]bool
	turnos     map[turnoKey]*domain.Turno
	services   []domain.Service
	methods    []domain.PaymentMethod
	customers  []domain.Customer

	reservations map[int]*reservationRecord
	nextField    int
	nextSlot     int
	nextRes      int
	nextTourney  int
}

type turnoKey struct {
	fieldID    int
	scheduleID int
	date       string
}

type reservationRecord struct {
	reservation domain.Reservation
	details     []domain.ReservationDetail
	items       []domain.SlotSelection
	email       string
}

// New creates a fixture provider seeded with a small complex: two field
// types, three fields, hourly slots from 08:00 to 22:00, and today's
// turnos available.
func New() *Provider {
	p := &Provider{
		now:      time.Now,
		inactive: map[int]bool{},
		slotsOff: map[int]bool{},
		turnos:   map[turnoKey]*domain.Turno{},
		fieldTypes: []domain.FieldType{
			{ID: 1, Description: "Fútbol 5", HourlyPrice: "1500.00"},
			{ID: 2, Description: "Fútbol 7", HourlyPrice: "2500.00"},
		},
		fields: []domain.Field{
			{ID: 1, Name: "Cancha Norte", TypeID: 1},
			{ID: 2, Name: "Cancha Sur", TypeID: 1},
			{ID: 3, Name: "Cancha Grande", TypeID: 2},
		},
		services: []domain.Service{
			{ID: 1, Description: "Iluminación", Cost: "200.00"},
			{ID: 2, Description: "Árbitro", Cost: "500.00"},
		},
		methods: []domain.PaymentMethod{
			{ID: 1, Description: "Efectivo"},
			{ID: 2, Description: "Tarjeta de Crédito"},
		},
		customers: []domain.Customer{
			{ID: 1, FirstName: "Ana", LastName: "García", DNI: "30111222", Phone: "1155550000", Email: "ana@example.com"},
		},
		reservations: map[int]*reservationRecord{},
		nextField:    4,
		nextSlot:     15,
		nextRes:      1,
		nextTourney:  1,
	}

	for i := 0; i < 14; i++ {
		hour := 8 + i
		p.slots = append(p.slots, domain.ScheduleSlot{
			ID:        i + 1,
			StartTime: fmt.Sprintf("%02d:00", hour),
			EndTime:   fmt.Sprintf("%02d:00", hour+1),
		})
	}
	p.materializeDay(timeutil.FormatDate(p.now().UTC()))
	return p
}

func (p *Provider) materializeDay(date string) {
	for _, field := range p.fields {
		if p.inactive[field.ID] {
			continue
		}
		for _, slot := range p.slots {
			if p.slotsOff[slot.ID] {
				continue
			}
			key := turnoKey{field.ID, slot.ID, date}
			if _, ok := p.turnos[key]; ok {
				continue
			}
			p.turnos[key] = &domain.Turno{
				FieldID:    field.ID,
				ScheduleID: slot.ID,
				Date:       date,
				StartTime:  slot.StartTime,
				Status:     domain.TurnoAvailable,
			}
		}
	}
}

func (p *Provider) FetchFields(ctx context.Context) ([]domain.Field, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Field, len(p.fields))
	copy(out, p.fields)
	return out, nil
}

func (p *Provider) FetchFieldTypes(ctx context.Context) ([]domain.FieldType, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.FieldType, len(p.fieldTypes))
	copy(out, p.fieldTypes)
	return out, nil
}

func (p *Provider) FetchScheduleSlots(ctx context.Context) ([]domain.ScheduleSlot, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ScheduleSlot, len(p.slots))
	copy(out, p.slots)
	return out, nil
}

func (p *Provider) FetchTurnos(ctx context.Context) ([]domain.Turno, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Turno, 0, len(p.turnos))
	for _, t := range p.turnos {
		out = append(out, *t)
	}
	return out, nil
}

func (p *Provider) FetchServices(ctx context.Context) ([]domain.Service, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Service, len(p.services))
	copy(out, p.services)
	return out, nil
}

func (p *Provider) FetchFieldDetail(ctx context.Context, fieldID int) (domain.FieldDetail, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fieldDetailLocked(fieldID)
}

func (p *Provider) fieldDetailLocked(fieldID int) (domain.FieldDetail, error) {
	field, ok := p.fieldLocked(fieldID)
	if !ok {
		return domain.FieldDetail{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Cancha no encontrada"}
	}

	var hourly float64
	for _, t := range p.fieldTypes {
		if t.ID == field.TypeID {
			hourly = parseAmount(t.HourlyPrice)
		}
	}
	total := hourly
	for _, s := range p.services {
		total += parseAmount(s.Cost)
	}

	return domain.FieldDetail{
		FieldID:     field.ID,
		Name:        field.Name,
		HourlyPrice: formatAmount(hourly),
		TotalPrice:  formatAmount(total),
		Services:    append([]domain.Service(nil), p.services...),
	}, nil
}

func (p *Provider) FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.PaymentMethod, len(p.methods))
	copy(out, p.methods)
	return out, nil
}

// ExpirePastTurnos flips turnos before today to unavailable.
func (p *Provider) ExpirePastTurnos(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	today := timeutil.FormatDate(p.now().UTC())
	for _, t := range p.turnos {
		if t.Date < today && t.Status.IsAvailable() {
			t.Status = domain.TurnoUnavailable
		}
	}
	return nil
}

// CreateTodayTurnos materializes missing turnos for today.
func (p *Provider) CreateTodayTurnos(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.materializeDay(timeutil.FormatDate(p.now().UTC()))
	return nil
}

// FinalizeExpiredReservations marks pending reservations for past dates
// as finalized.
func (p *Provider) FinalizeExpiredReservations(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	today := timeutil.FormatDate(p.now().UTC())
	for _, rec := range p.reservations {
		if !rec.reservation.Status.IsPending() {
			continue
		}
		expired := true
		for _, item := range rec.items {
			if item.Date >= today {
				expired = false
				break
			}
		}
		if expired && len(rec.items) > 0 {
			rec.reservation.Status = domain.ReservationFinalized
		}
	}
	return nil
}

func (p *Provider) CreateReservation(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(req.Items) == 0 {
		return domain.Reservation{}, &providers.APIError{StatusCode: http.StatusUnprocessableEntity, Detail: "Debe seleccionar al menos un turno"}
	}

	// Every slot must exist and be available before any is taken.
	for _, item := range req.Items {
		key := turnoKey{item.FieldID, item.ScheduleID, item.Date}
		turno, ok := p.turnos[key]
		if !ok {
			return domain.Reservation{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Turno no encontrado"}
		}
		if !turno.Status.IsAvailable() {
			return domain.Reservation{}, &providers.APIError{StatusCode: http.StatusConflict, Detail: "El turno ya no está disponible"}
		}
	}

	var total float64
	details := make([]domain.ReservationDetail, 0, len(req.Items))
	for i, item := range req.Items {
		detail, err := p.fieldDetailLocked(item.FieldID)
		if err != nil {
			return domain.Reservation{}, err
		}
		price := parseAmount(detail.TotalPrice)
		total += price
		details = append(details, domain.ReservationDetail{
			ID:            i + 1,
			ReservationID: p.nextRes,
			FieldID:       item.FieldID,
			ScheduleID:    item.ScheduleID,
			PricePerHour:  detail.HourlyPrice,
			ItemTotal:     detail.TotalPrice,
		})
		p.turnos[turnoKey{item.FieldID, item.ScheduleID, item.Date}].Status = domain.TurnoUnavailable
	}

	email := ""
	for _, c := range p.customers {
		if c.ID == req.ClientID {
			email = c.Email
		}
	}

	reservation := domain.Reservation{
		ID:       p.nextRes,
		ClientID: req.ClientID,
		Date:     timeutil.FormatDate(p.now().UTC()),
		Amount:   formatAmount(total),
		Status:   domain.ReservationPending,
	}
	p.reservations[p.nextRes] = &reservationRecord{
		reservation: reservation,
		details:     details,
		items:       append([]domain.SlotSelection(nil), req.Items...),
		email:       email,
	}
	p.nextRes++
	return reservation, nil
}

func (p *Provider) ReservationDetails(ctx context.Context, id int) (domain.Reservation, []domain.ReservationDetail, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.reservations[id]
	if !ok {
		return domain.Reservation{}, nil, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Reserva no encontrada"}
	}
	return rec.reservation, append([]domain.ReservationDetail(nil), rec.details...), nil
}

func (p *Provider) ReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.Reservation
	for _, rec := range p.reservations {
		if rec.email == email {
			out = append(out, rec.reservation)
		}
	}
	if len(out) == 0 {
		return nil, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "No se encontraron reservas"}
	}
	return out, nil
}

func (p *Provider) ReservationBySlot(ctx context.Context, slot domain.SlotSelection) (domain.Reservation, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, rec := range p.reservations {
		for _, item := range rec.items {
			if item == slot {
				return rec.reservation, nil
			}
		}
	}
	return domain.Reservation{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Reserva no encontrada"}
}

func (p *Provider) CancelReservation(ctx context.Context, id int) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.reservations[id]
	if !ok {
		return &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Reserva no encontrada"}
	}
	if !rec.reservation.Status.IsPending() {
		return &providers.APIError{StatusCode: http.StatusConflict, Detail: "Solo se pueden eliminar reservas pendientes"}
	}
	for _, item := range rec.items {
		if turno, ok := p.turnos[turnoKey{item.FieldID, item.ScheduleID, item.Date}]; ok {
			turno.Status = domain.TurnoAvailable
		}
	}
	delete(p.reservations, id)
	return nil
}

func (p *Provider) CustomerByEmail(ctx context.Context, email string) (domain.Customer, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return domain.Customer{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Cliente no encontrado"}
}

func (p *Provider) UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.customers {
		if c.ID == customer.ID {
			p.customers[i] = customer
			return customer, nil
		}
	}
	return domain.Customer{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Cliente no encontrado"}
}

// MaxMatchesPerDay reports the daily capacity: active fields of the
// requested types times slots per day.
func (p *Provider) MaxMatchesPerDay(ctx context.Context, teamCount int, fieldTypes []int) (int, error) {
	_ = ctx
	_ = teamCount
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dailyCapacityLocked(fieldTypes), nil
}

func (p *Provider) dailyCapacityLocked(fieldTypes []int) int {
	wanted := make(map[int]bool, len(fieldTypes))
	for _, t := range fieldTypes {
		wanted[t] = true
	}
	fields := 0
	for _, f := range p.fields {
		if !p.inactive[f.ID] && wanted[f.TypeID] {
			fields++
		}
	}
	slots := 0
	for _, s := range p.slots {
		if !p.slotsOff[s.ID] {
			slots++
		}
	}
	return fields * slots
}

func (p *Provider) CheckAvailability(ctx context.Context, q providers.TournamentQuery) (domain.TournamentAvailability, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := p.availableSlotsLocked(q)
	if len(candidates) < q.TotalMatches {
		return domain.TournamentAvailability{
			Available:       false,
			TurnosAvailable: len(candidates),
			Message: fmt.Sprintf("Solo hay %d turnos disponibles para %d partidos",
				len(candidates), q.TotalMatches),
		}, nil
	}

	var estimated float64
	for _, key := range candidates[:q.TotalMatches] {
		detail, err := p.fieldDetailLocked(key.fieldID)
		if err != nil {
			continue
		}
		estimated += parseAmount(detail.TotalPrice)
	}

	return domain.TournamentAvailability{
		Available:       true,
		TurnosAvailable: len(candidates),
		EstimatedAmount: formatAmount(estimated),
	}, nil
}

// availableSlotsLocked lists available turnos in the query's date range
// on fields of the requested types, respecting the per-day cap.
func (p *Provider) availableSlotsLocked(q providers.TournamentQuery) []turnoKey {
	wanted := make(map[int]bool, len(q.FieldTypes))
	for _, t := range q.FieldTypes {
		wanted[t] = true
	}
	typeOf := make(map[int]int, len(p.fields))
	for _, f := range p.fields {
		typeOf[f.ID] = f.TypeID
	}

	var all []turnoKey
	for key, turno := range p.turnos {
		if !turno.Status.IsAvailable() {
			continue
		}
		if key.date < q.StartDate || key.date > q.EndDate {
			continue
		}
		if !wanted[typeOf[key.fieldID]] {
			continue
		}
		all = append(all, key)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].date != all[j].date {
			return all[i].date < all[j].date
		}
		if all[i].scheduleID != all[j].scheduleID {
			return all[i].scheduleID < all[j].scheduleID
		}
		return all[i].fieldID < all[j].fieldID
	})

	perDay := make(map[string]int)
	var keys []turnoKey
	for _, key := range all {
		if q.MatchesPerDay > 0 && perDay[key.date] >= q.MatchesPerDay {
			continue
		}
		perDay[key.date]++
		keys = append(keys, key)
	}
	return keys
}

func (p *Provider) BookTournament(ctx context.Context, req domain.TournamentRequest) (domain.TournamentBooking, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := p.availableSlotsLocked(providers.TournamentQuery{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalMatches:  req.TotalMatches,
		MatchesPerDay: req.MatchesPerDay,
		TeamCount:     len(req.Teams),
		FieldTypes:    req.FieldTypes,
	})
	if len(candidates) < req.TotalMatches {
		return domain.TournamentBooking{}, &providers.APIError{
			StatusCode: http.StatusConflict,
			Detail:     "No hay turnos suficientes para el torneo",
		}
	}

	nameOf := make(map[int]string, len(p.fields))
	for _, f := range p.fields {
		nameOf[f.ID] = f.Name
	}
	startOf := make(map[int]string, len(p.slots))
	for _, s := range p.slots {
		startOf[s.ID] = s.StartTime
	}

	var total float64
	booked := make([]domain.BookedSlot, 0, req.TotalMatches)
	for _, key := range candidates[:req.TotalMatches] {
		detail, err := p.fieldDetailLocked(key.fieldID)
		if err != nil {
			continue
		}
		price := parseAmount(detail.TotalPrice)
		total += price
		p.turnos[key].Status = domain.TurnoUnavailable
		booked = append(booked, domain.BookedSlot{
			FieldID:    key.fieldID,
			FieldName:  nameOf[key.fieldID],
			ScheduleID: key.scheduleID,
			StartTime:  startOf[key.scheduleID],
			Date:       key.date,
			Price:      formatAmount(price),
		})
	}

	daysNeeded := 0
	if req.MatchesPerDay > 0 {
		daysNeeded = (req.TotalMatches + req.MatchesPerDay - 1) / req.MatchesPerDay
	}

	booking := domain.TournamentBooking{
		TournamentID:     p.nextTourney,
		Name:             req.Name,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Teams:            req.Teams,
		BookedSlots:      booked,
		TotalMatches:     req.TotalMatches,
		MatchesPerDay:    req.MatchesPerDay,
		MaxMatchesPerDay: p.dailyCapacityLocked(req.FieldTypes),
		TotalAmount:      formatAmount(total),
		DaysNeeded:       daysNeeded,
	}
	p.nextTourney++
	return booking, nil
}

func (p *Provider) CreateField(ctx context.Context, name string, typeID int) (domain.Field, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	field := domain.Field{ID: p.nextField, Name: name, TypeID: typeID}
	p.fields = append(p.fields, field)
	p.nextField++
	return field, nil
}

func (p *Provider) UpdateField(ctx context.Context, id int, name string, typeID int) (domain.Field, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, f := range p.fields {
		if f.ID == id {
			p.fields[i].Name = name
			p.fields[i].TypeID = typeID
			return p.fields[i], nil
		}
	}
	return domain.Field{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Cancha no encontrada"}
}

// DeactivateField soft-deletes: the field stays listed but gets no new
// turnos.
func (p *Provider) DeactivateField(ctx context.Context, id int) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.fieldLocked(id); !ok {
		return &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Cancha no encontrada"}
	}
	p.inactive[id] = true
	return nil
}

func (p *Provider) fieldLocked(id int) (domain.Field, bool) {
	for _, f := range p.fields {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Field{}, false
}

func (p *Provider) CreateScheduleSlot(ctx context.Context, start, end string) (domain.ScheduleSlot, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	slot := domain.ScheduleSlot{ID: p.nextSlot, StartTime: start, EndTime: end}
	p.slots = append(p.slots, slot)
	p.nextSlot++
	return slot, nil
}

func (p *Provider) UpdateScheduleSlot(ctx context.Context, id int, start, end string) (domain.ScheduleSlot, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.slots {
		if s.ID == id {
			p.slots[i].StartTime = start
			p.slots[i].EndTime = end
			return p.slots[i], nil
		}
	}
	return domain.ScheduleSlot{}, &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Horario no encontrado"}
}

func (p *Provider) DeactivateScheduleSlot(ctx context.Context, id int) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.slots {
		if s.ID == id {
			p.slotsOff[id] = true
			return nil
		}
	}
	return &providers.APIError{StatusCode: http.StatusNotFound, Detail: "Horario no encontrado"}
}

// FetchReport returns a minimal single-page PDF labeled with the report
// kind.
func (p *Provider) FetchReport(ctx context.Context, q providers.ReportQuery) ([]byte, error) {
	_ = ctx
	header := "%PDF-1.4\n% fixture report: " + string(q.Kind) + "\n%%EOF\n"
	return []byte(header), nil
}

func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
