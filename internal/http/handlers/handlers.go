package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"donbalon-gateway/internal/app/schedule"
	"donbalon-gateway/internal/poller"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/reports"
	"donbalon-gateway/internal/timeutil"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the booking services.
type Handler struct {
	schedule   *schedule.Service
	provider   providers.BookingProvider
	reports    *reports.Writer
	logger     *slog.Logger
	now        nowFunc
	statusFn   func() poller.Status
	refreshFn  func(context.Context) error
	adminToken string
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *schedule.Service, provider providers.BookingProvider, writer *reports.Writer, logger *slog.Logger, statusFn func() poller.Status, refreshFn func(context.Context) error, adminToken string) *Handler {
	return &Handler{
		schedule:   svc,
		provider:   provider,
		reports:    writer,
		logger:     logger,
		now:        time.Now,
		statusFn:   statusFn,
		refreshFn:  refreshFn,
		adminToken: adminToken,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/health":
		h.Health(w, r)
	case path == "/ready":
		h.Ready(w, r)
	case path == "/grid":
		h.Grid(w, r)
	case path == "/refresh":
		h.Refresh(w, r)
	case path == "/canchas" || path == "/canchas/":
		h.Fields(w, r)
	case strings.HasPrefix(path, "/canchas/") && strings.HasSuffix(path, "/detalle"):
		h.FieldDetail(w, r)
	case path == "/tipos-cancha":
		h.FieldTypes(w, r)
	case path == "/horarios":
		h.ScheduleSlots(w, r)
	case path == "/servicios":
		h.Services(w, r)
	case path == "/metodos-pago":
		h.PaymentMethods(w, r)
	case path == "/reservas/cotizar":
		h.BookingQuote(w, r)
	case path == "/reservas/turno/buscar":
		h.ReservationBySlot(w, r)
	case path == "/reservas" || path == "/reservas/":
		h.Reservations(w, r)
	case strings.HasPrefix(path, "/reservas/"):
		h.ReservationByID(w, r)
	case path == "/torneos/max-partidos-dia":
		h.TournamentMaxMatches(w, r)
	case path == "/torneos/validar-disponibilidad":
		h.TournamentAvailability(w, r)
	case path == "/torneos/reservar":
		h.TournamentBooking(w, r)
	case strings.HasPrefix(path, "/admin/"):
		h.Admin(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on the refresher's health.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Grid returns the availability matrix for one date, defaulting to
// today.
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	date := r.URL.Query().Get("fecha")
	if date == "" {
		date = timeutil.FormatDate(h.now().UTC())
	} else if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}

	payload := h.schedule.Grid(date)
	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("served grid", "date", date, "rows", len(payload.Rows))
	}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// Refresh forces a reference-data reload outside the regular interval.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.refreshFn == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}
	if err := h.refreshFn(r.Context()); err != nil {
		writeError(w, r, http.StatusBadGateway, err.Error(), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"}, h.logger)
}

// Fields lists the cached canchas.
func (h *Handler) Fields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.schedule.Fields(), h.logger)
}

// FieldDetail proxies the priced view of one field.
func (h *Handler) FieldDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	idRaw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/canchas/"), "/detalle")
	id, err := strconv.Atoi(idRaw)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid field id", h.logger)
		return
	}
	detail, err := h.provider.FetchFieldDetail(r.Context(), id)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail, h.logger)
}

// FieldTypes lists the cached field types.
func (h *Handler) FieldTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.schedule.FieldTypes(), h.logger)
}

// ScheduleSlots lists the cached schedule definitions.
func (h *Handler) ScheduleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.schedule.ScheduleSlots(), h.logger)
}

// Services lists the cached amenity catalog.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.schedule.Services(), h.logger)
}

// PaymentMethods lists the cached payment methods.
func (h *Handler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.schedule.PaymentMethods(), h.logger)
}
