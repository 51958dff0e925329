package donbalon

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
)

// fieldTypesParam joins type IDs into the comma-separated form the
// upstream expects.
func fieldTypesParam(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

// MaxMatchesPerDay asks the upstream how many matches fit in one day for
// the given team count and field types.
func (c *Client) MaxMatchesPerDay(ctx context.Context, teamCount int, fieldTypes []int) (int, error) {
	query := url.Values{}
	query.Set("num_equipos", strconv.Itoa(teamCount))
	query.Set("tipos_cancha", fieldTypesParam(fieldTypes))

	var payload struct {
		MaxMatchesPerDay int    `json:"max_partidos_por_dia"`
		Message          string `json:"mensaje"`
	}
	if err := c.getJSON(ctx, "/torneos/max-partidos-dia", query, &payload); err != nil {
		return 0, err
	}
	return payload.MaxMatchesPerDay, nil
}

// CheckAvailability asks the upstream whether the tournament shape fits
// the real turno inventory over the date range.
func (c *Client) CheckAvailability(ctx context.Context, q providers.TournamentQuery) (domain.TournamentAvailability, error) {
	query := url.Values{}
	query.Set("fecha_inicio", q.StartDate)
	query.Set("fecha_fin", q.EndDate)
	query.Set("total_partidos", strconv.Itoa(q.TotalMatches))
	query.Set("partidos_por_dia", strconv.Itoa(q.MatchesPerDay))
	query.Set("num_equipos", strconv.Itoa(q.TeamCount))
	query.Set("tipos_cancha", fieldTypesParam(q.FieldTypes))

	var availability domain.TournamentAvailability
	if err := c.getJSON(ctx, "/torneos/validar-disponibilidad", query, &availability); err != nil {
		return domain.TournamentAvailability{}, err
	}
	return availability, nil
}

// BookTournament reserves every turno the tournament needs in one call.
// The upstream picks the concrete slots and returns them.
func (c *Client) BookTournament(ctx context.Context, req domain.TournamentRequest) (domain.TournamentBooking, error) {
	var booking domain.TournamentBooking
	if err := c.sendJSON(ctx, http.MethodPost, "/torneos/reservar", req, &booking); err != nil {
		return domain.TournamentBooking{}, err
	}
	return booking, nil
}
