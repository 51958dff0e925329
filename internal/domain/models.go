package domain

import "strings"

// TurnoStatus mirrors the upstream contract for bookable slot states.
// The upstream stores free-form Spanish labels; comparisons are
// case-insensitive.
type TurnoStatus string

const (
	TurnoAvailable   TurnoStatus = "disponible"
	TurnoUnavailable TurnoStatus = "no disponible"
)

// IsAvailable reports whether the status marks the turno as reservable.
func (s TurnoStatus) IsAvailable() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(TurnoAvailable))
}

// ReservationStatus mirrors the upstream reservation lifecycle states.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pendiente"
	ReservationPaid      ReservationStatus = "Pagada"
	ReservationCanceled  ReservationStatus = "Cancelada"
	ReservationFinalized ReservationStatus = "Finalizada"
)

// IsPending reports whether the reservation is still mutable.
func (s ReservationStatus) IsPending() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(ReservationPending))
}

// Field is a rentable cancha.
type Field struct {
	ID     int    `json:"id_cancha"`
	Name   string `json:"nombre"`
	TypeID int    `json:"id_tipo"`
}

// FieldType carries the per-type hourly price used in quotes.
type FieldType struct {
	ID          int    `json:"id_tipo"`
	Description string `json:"descripcion"`
	HourlyPrice string `json:"precio_hora"`
}

// ScheduleSlot is a recurring daily time window, e.g. 08:00-09:00.
type ScheduleSlot struct {
	ID        int    `json:"id_horario"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

// Turno is a bookable instance of (field, schedule slot, date) materialized
// upstream. Absence of a record means "not yet created", which renders
// differently from an occupied slot.
type Turno struct {
	FieldID    int         `json:"id_cancha"`
	ScheduleID int         `json:"id_horario"`
	Date       string      `json:"fecha"`
	StartTime  string      `json:"hora_inicio,omitempty"`
	Status     TurnoStatus `json:"estado_turno"`
}

// Service is an amenity attached to a field (lighting, referee, etc).
type Service struct {
	ID          int    `json:"id_servicio"`
	Description string `json:"descripcion"`
	Cost        string `json:"costo_servicio"`
}

// FieldDetail is the priced view of a field: hourly price of its type plus
// the summed cost of its services.
type FieldDetail struct {
	FieldID     int       `json:"id_cancha"`
	Name        string    `json:"nombre"`
	HourlyPrice string    `json:"precio_hora"`
	TotalPrice  string    `json:"precio_total"`
	Services    []Service `json:"servicios"`
}

// PaymentMethod is an upstream-defined payment option. Card-specific form
// fields are required only when the description mentions "tarjeta".
type PaymentMethod struct {
	ID          int    `json:"id_metodo_pago"`
	Description string `json:"descripcion"`
}

// RequiresCard reports whether the method needs card fields filled in.
func (m PaymentMethod) RequiresCard() bool {
	return strings.Contains(strings.ToLower(m.Description), "tarjeta")
}

// SlotSelection identifies one turno chosen for booking.
type SlotSelection struct {
	FieldID    int    `json:"id_cancha"`
	ScheduleID int    `json:"id_horario"`
	Date       string `json:"fecha"`
}

// Reservation is the upstream reservation record.
type Reservation struct {
	ID       int               `json:"id_reserva"`
	ClientID int               `json:"id_cliente"`
	Date     string            `json:"fecha_reserva"`
	Amount   string            `json:"monto_total"`
	Status   ReservationStatus `json:"estado_reserva"`
}

// ReservationDetail is one priced line item of a reservation.
type ReservationDetail struct {
	ID            int    `json:"id_detalle"`
	ReservationID int    `json:"id_reserva"`
	FieldID       int    `json:"id_cancha"`
	ScheduleID    int    `json:"id_horario"`
	PricePerHour  string `json:"precioxhora"`
	ItemTotal     string `json:"precio_total_item"`
}

// ReservationRequest is the payload for creating a reservation from
// selected slots.
type ReservationRequest struct {
	ClientID        int             `json:"id_cliente"`
	PaymentMethodID int             `json:"id_metodo_pago"`
	Items           []SlotSelection `json:"items"`
}

// Customer is the upstream client record. The wire field for the email
// address is "mail", not "email".
type Customer struct {
	ID        int    `json:"id_cliente"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	DNI       string `json:"dni"`
	Phone     string `json:"telefono"`
	Email     string `json:"mail"`
}

// Team is a tournament participant.
type Team struct {
	Name    string `json:"nombre"`
	Players int    `json:"cant_jugadores"`
}

// TournamentRequest is the payload for booking a whole tournament.
type TournamentRequest struct {
	ClientID        int    `json:"id_cliente"`
	Name            string `json:"nombre_torneo"`
	StartDate       string `json:"fecha_inicio"`
	EndDate         string `json:"fecha_fin"`
	Teams           []Team `json:"equipos"`
	TotalMatches    int    `json:"total_partidos"`
	MatchesPerDay   int    `json:"partidos_por_dia"`
	PaymentMethodID int    `json:"id_metodo_pago"`
	FieldTypes      []int  `json:"tipos_cancha"`
}

// TournamentAvailability is the upstream feasibility answer carried into
// the payment step.
type TournamentAvailability struct {
	Available       bool   `json:"disponible"`
	TurnosAvailable int    `json:"turnos_disponibles"`
	EstimatedAmount string `json:"monto_estimado"`
	Message         string `json:"mensaje"`
}

// BookedSlot is a turno resolved to a concrete date/time by the upstream
// tournament scheduler.
type BookedSlot struct {
	FieldID    int    `json:"id_cancha"`
	FieldName  string `json:"nombre_cancha"`
	ScheduleID int    `json:"id_horario"`
	StartTime  string `json:"hora_inicio"`
	Date       string `json:"fecha"`
	Price      string `json:"precio"`
}

// TournamentBooking is the confirmation returned after a successful
// tournament reservation.
type TournamentBooking struct {
	TournamentID     int          `json:"id_torneo"`
	Name             string       `json:"nombre_torneo"`
	StartDate        string       `json:"fecha_inicio"`
	EndDate          string       `json:"fecha_fin"`
	Teams            []Team       `json:"equipos"`
	BookedSlots      []BookedSlot `json:"turnos_seleccionados"`
	TotalMatches     int          `json:"total_partidos"`
	MatchesPerDay    int          `json:"partidos_por_dia"`
	MaxMatchesPerDay int          `json:"max_partidos_por_dia"`
	TotalAmount      string       `json:"monto_total"`
	DaysNeeded       int          `json:"dias_necesarios"`
}
