package donbalon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"donbalon-gateway/internal/providers"
)

// FetchReport downloads a rendered PDF from the upstream report
// endpoints. The query fields consulted depend on the report kind.
func (c *Client) FetchReport(ctx context.Context, q providers.ReportQuery) ([]byte, error) {
	switch q.Kind {
	case providers.ReportConfirmation:
		return c.getBytes(ctx, fmt.Sprintf("/reportes/confirmacion/%d", q.ReservationID), nil)
	case providers.ReportClient:
		return c.getBytes(ctx, fmt.Sprintf("/reportes/cliente/%d", q.ClientID), nil)
	case providers.ReportField:
		query := url.Values{}
		query.Set("fecha_inicio", q.StartDate)
		query.Set("fecha_fin", q.EndDate)
		return c.getBytes(ctx, fmt.Sprintf("/reportes/cancha/%d", q.FieldID), query)
	case providers.ReportTopFields:
		query := url.Values{}
		if q.TopN > 0 {
			query.Set("top_n", strconv.Itoa(q.TopN))
		}
		return c.getBytes(ctx, "/reportes/canchas-mas-utilizadas", query)
	case providers.ReportMonthlyUse:
		return c.getBytes(ctx, "/reportes/utilizacion-mensual", nil)
	default:
		return nil, fmt.Errorf("donbalon: unknown report kind %q", q.Kind)
	}
}
