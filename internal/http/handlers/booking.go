package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"donbalon-gateway/internal/admin"
	"donbalon-gateway/internal/booking"
	"donbalon-gateway/internal/domain"
)

type quoteRequest struct {
	ClientID int                    `json:"id_cliente"`
	Items    []domain.SlotSelection `json:"items"`
}

type quoteResponse struct {
	booking.Summary
	PaymentMethods []domain.PaymentMethod `json:"metodos_pago"`
}

type bookingRequest struct {
	ClientID        int                    `json:"id_cliente"`
	PaymentMethodID int                    `json:"id_metodo_pago"`
	Items           []domain.SlotSelection `json:"items"`
	Card            *booking.Card          `json:"tarjeta,omitempty"`
}

// BookingQuote prices the selected slots and lists the payment methods,
// the data shown before the payment step.
func (h *Handler) BookingQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	var req quoteRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	flow, err := booking.NewFlow(h.provider, req.ClientID, req.Items)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	if err := flow.Load(r.Context()); err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Summary:        flow.Summary(),
		PaymentMethods: flow.PaymentMethods(),
	}, h.logger)
}

// Reservations creates a reservation (POST) or lists a client's
// reservations by email (GET).
func (h *Handler) Reservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createReservation(w, r)
	case http.MethodGet:
		h.reservationsByEmail(w, r)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	flow, err := booking.NewFlow(h.provider, req.ClientID, req.Items)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	if err := flow.Load(r.Context()); err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	reservation, err := flow.Submit(r.Context(), req.PaymentMethodID, req.Card)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("reservation created", "reservation_id", reservation.ID, "items", len(req.Items))
	}
	writeJSON(w, http.StatusCreated, reservation, h.logger)
}

func (h *Handler) reservationsByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	ctrl := admin.NewReservationController(h.provider)
	reservations, err := ctrl.FindByEmail(r.Context(), email)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, reservations, h.logger)
}

// ReservationBySlot locates the reservation holding one turno.
func (h *Handler) ReservationBySlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	query := r.URL.Query()
	fieldID, _ := strconv.Atoi(query.Get("id_cancha"))
	scheduleID, _ := strconv.Atoi(query.Get("id_horario"))
	slot := domain.SlotSelection{
		FieldID:    fieldID,
		ScheduleID: scheduleID,
		Date:       query.Get("fecha"),
	}

	ctrl := admin.NewReservationController(h.provider)
	reservation, err := ctrl.FindBySlot(r.Context(), slot)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, reservation, h.logger)
}

type reservationResponse struct {
	domain.Reservation
	Details []domain.ReservationDetail `json:"detalles"`
}

// ReservationByID fetches (GET) or cancels (DELETE) one reservation.
// Cancellation is only accepted while the reservation is pending.
func (h *Handler) ReservationByID(w http.ResponseWriter, r *http.Request) {
	idRaw := strings.TrimPrefix(r.URL.Path, "/reservas/")
	id, err := strconv.Atoi(idRaw)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid reservation id", h.logger)
		return
	}

	ctrl := admin.NewReservationController(h.provider)
	switch r.Method {
	case http.MethodGet:
		reservation, details, err := ctrl.FindByID(r.Context(), id)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, reservationResponse{Reservation: reservation, Details: details}, h.logger)
	case http.MethodDelete:
		if err := ctrl.Cancel(r.Context(), id); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}
