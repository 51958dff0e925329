package donbalon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/testutil"
)

func newTestClient(fn testutil.RoundTripperFunc) *Client {
	return NewClient(Config{
		BaseURL:    "http://upstream.test/",
		HTTPClient: &http.Client{Transport: fn},
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	if got := normalizeBaseURL("http://api.test/"); got != "http://api.test" {
		t.Errorf("trailing slash should be trimmed, got %q", got)
	}
	if got := normalizeBaseURL(""); got != defaultBaseURL {
		t.Errorf("empty base should fall back to the default, got %q", got)
	}
}

func TestFetchFieldsDecodesSpanishPayload(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/canchas/" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return jsonResponse(200, `[{"id_cancha":1,"nombre":"Cancha 1","id_tipo":2}]`), nil
	})

	fields, err := client.FetchFields(context.Background())
	if err != nil {
		t.Fatalf("FetchFields: %v", err)
	}
	if len(fields) != 1 || fields[0].ID != 1 || fields[0].Name != "Cancha 1" || fields[0].TypeID != 2 {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestErrorDetailExtraction(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(404, `{"detail":"Cancha no encontrada"}`), nil
	})

	_, err := client.FetchFieldDetail(context.Background(), 99)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !providers.IsNotFound(err) {
		t.Errorf("404 should map to a not-found error, got %v", err)
	}
	if got := providers.Detail(err, "fallback"); got != "Cancha no encontrada" {
		t.Errorf("expected upstream detail, got %q", got)
	}
}

func TestErrorWithMalformedBodyKeepsStatus(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(502, `<html>bad gateway</html>`), nil
	})

	_, err := client.FetchFields(context.Background())
	apiErr, ok := providers.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 502 || apiErr.Detail != "" {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
}

func TestCreateReservationSendsJSONBody(t *testing.T) {
	var captured domain.ReservationRequest
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/reservas/" {
			t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		return jsonResponse(201, `{"id_reserva":42,"id_cliente":7,"monto_total":"1700.00","estado_reserva":"Pendiente"}`), nil
	})

	created, err := client.CreateReservation(context.Background(), domain.ReservationRequest{
		ClientID:        7,
		PaymentMethodID: 1,
		Items:           []domain.SlotSelection{{FieldID: 1, ScheduleID: 10, Date: "2026-03-01"}},
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if created.ID != 42 || !created.Status.IsPending() {
		t.Errorf("unexpected reservation %+v", created)
	}
	if captured.ClientID != 7 || len(captured.Items) != 1 {
		t.Errorf("unexpected request body %+v", captured)
	}
}

func TestReservationBySlotQuery(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("id_cancha") != "1" || q.Get("id_horario") != "10" || q.Get("fecha") != "2026-03-01" {
			t.Errorf("unexpected query %q", req.URL.RawQuery)
		}
		return jsonResponse(200, `{"id_reserva":5,"estado_reserva":"Pendiente"}`), nil
	})

	reservation, err := client.ReservationBySlot(context.Background(), domain.SlotSelection{
		FieldID: 1, ScheduleID: 10, Date: "2026-03-01",
	})
	if err != nil {
		t.Fatalf("ReservationBySlot: %v", err)
	}
	if reservation.ID != 5 {
		t.Errorf("unexpected reservation %+v", reservation)
	}
}

func TestReservationsByEmailEscapesPath(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if !strings.HasPrefix(req.URL.Path, "/reservas/cliente/email/") {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return jsonResponse(200, `[]`), nil
	})

	if _, err := client.ReservationsByEmail(context.Background(), "ana+test@example.com"); err != nil {
		t.Fatalf("ReservationsByEmail: %v", err)
	}
}

func TestReservationDetailsUnwrapsEmbeddedItems(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/reservas/8/detalles" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return jsonResponse(200, `{
			"id_reserva":8,"estado_reserva":"Pendiente",
			"detalles":[{"id_detalle":1,"id_reserva":8,"id_cancha":1,"id_horario":10,"precio_total_item":"1700.00"}]
		}`), nil
	})

	reservation, details, err := client.ReservationDetails(context.Background(), 8)
	if err != nil {
		t.Fatalf("ReservationDetails: %v", err)
	}
	if reservation.ID != 8 || len(details) != 1 || details[0].ItemTotal != "1700.00" {
		t.Fatalf("unexpected result %+v %+v", reservation, details)
	}
}

func TestMaxMatchesPerDayQuery(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("num_equipos") != "4" || q.Get("tipos_cancha") != "1,2" {
			t.Errorf("unexpected query %q", req.URL.RawQuery)
		}
		return jsonResponse(200, `{"max_partidos_por_dia":6,"mensaje":"ok"}`), nil
	})

	limit, err := client.MaxMatchesPerDay(context.Background(), 4, []int{1, 2})
	if err != nil {
		t.Fatalf("MaxMatchesPerDay: %v", err)
	}
	if limit != 6 {
		t.Errorf("expected 6, got %d", limit)
	}
}

func TestCheckAvailabilityQuery(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("fecha_inicio") != "2026-06-20" || q.Get("total_partidos") != "10" || q.Get("partidos_por_dia") != "3" {
			t.Errorf("unexpected query %q", req.URL.RawQuery)
		}
		return jsonResponse(200, `{"disponible":true,"turnos_disponibles":30,"monto_estimado":"15000.00","mensaje":"ok"}`), nil
	})

	availability, err := client.CheckAvailability(context.Background(), providers.TournamentQuery{
		StartDate:     "2026-06-20",
		EndDate:       "2026-06-25",
		TotalMatches:  10,
		MatchesPerDay: 3,
		TeamCount:     4,
		FieldTypes:    []int{1, 2},
	})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !availability.Available || availability.EstimatedAmount != "15000.00" {
		t.Errorf("unexpected availability %+v", availability)
	}
}

func TestFetchReportReturnsRawBytes(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/reportes/confirmacion/42" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": []string{"application/pdf"}},
			Body:       io.NopCloser(strings.NewReader("%PDF-1.4 fake")),
		}, nil
	})

	data, err := client.FetchReport(context.Background(), providers.ReportQuery{
		Kind:          providers.ReportConfirmation,
		ReservationID: 42,
	})
	if err != nil {
		t.Fatalf("FetchReport: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("unexpected report payload %q", data)
	}
}

func TestCancelReservationUsesDelete(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodDelete || req.URL.Path != "/reservas/5" {
			t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		return jsonResponse(204, ""), nil
	})

	if err := client.CancelReservation(context.Background(), 5); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
}
