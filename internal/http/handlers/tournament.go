package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/tournament"
)

type tournamentRequest struct {
	ClientID int `json:"id_cliente"`
	tournament.Form
	PaymentMethodID int              `json:"id_metodo_pago"`
	Card            *tournament.Card `json:"tarjeta,omitempty"`
}

type availabilityResponse struct {
	domain.TournamentAvailability
	DaysNeeded       int `json:"dias_necesarios"`
	MaxMatchesPerDay int `json:"max_partidos_por_dia"`
}

// TournamentMaxMatches reports how many matches fit in one day for a
// team count and set of field types.
func (h *Handler) TournamentMaxMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	query := r.URL.Query()
	teamCount, _ := strconv.Atoi(query.Get("num_equipos"))
	fieldTypes, err := parseIDList(query.Get("tipos_cancha"))
	if err != nil || len(fieldTypes) == 0 {
		writeError(w, r, http.StatusBadRequest, "invalid tipos_cancha", h.logger)
		return
	}

	limit, err := h.provider.MaxMatchesPerDay(r.Context(), teamCount, fieldTypes)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"max_partidos_por_dia": limit}, h.logger)
}

// TournamentAvailability validates the tournament form and asks the
// upstream whether the shape fits the turno inventory.
func (h *Handler) TournamentAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	var req tournamentRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	flow, err := h.runTournamentFlow(r, req)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		TournamentAvailability: flow.Availability(),
		DaysNeeded:             flow.DaysNeeded(),
		MaxMatchesPerDay:       flow.MaxMatchesPerDay(),
	}, h.logger)
}

// TournamentBooking runs the full flow through payment and books every
// turno the tournament needs.
func (h *Handler) TournamentBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	var req tournamentRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	flow, err := h.runTournamentFlow(r, req)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}
	booking, err := flow.Confirm(r.Context(), req.PaymentMethodID, req.Card)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("tournament booked",
			"tournament_id", booking.TournamentID,
			"slots", len(booking.BookedSlots),
		)
	}
	writeJSON(w, http.StatusCreated, booking, h.logger)
}

// runTournamentFlow drives a flow from an HTTP payload through the
// availability check. Teams pass through AddTeam so duplicate names and
// undersized rosters are rejected the same way the form does.
func (h *Handler) runTournamentFlow(r *http.Request, req tournamentRequest) (*tournament.Flow, error) {
	flow := tournament.NewFlow(h.provider, req.ClientID)
	if err := flow.Load(r.Context()); err != nil {
		return nil, err
	}

	teams := req.Teams
	form := req.Form
	form.Teams = []domain.Team{}
	flow.SetForm(form)
	for _, team := range teams {
		if err := flow.AddTeam(team.Name, team.Players); err != nil {
			return nil, err
		}
	}

	if _, err := flow.RefreshMaxMatches(r.Context()); err != nil {
		return nil, err
	}
	if _, err := flow.CheckAvailability(r.Context()); err != nil {
		return nil, err
	}
	return flow, nil
}

func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
