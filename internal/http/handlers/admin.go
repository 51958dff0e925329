package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"donbalon-gateway/internal/admin"
	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/providers"
)

// Admin guards the management surface with a shared token and routes to
// the panel operations.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	path := r.URL.Path
	switch {
	case path == "/admin/canchas" || path == "/admin/canchas/":
		h.adminCreateField(w, r)
	case strings.HasPrefix(path, "/admin/canchas/"):
		h.adminFieldByID(w, r)
	case path == "/admin/horarios" || path == "/admin/horarios/":
		h.adminCreateSchedule(w, r)
	case strings.HasPrefix(path, "/admin/horarios/"):
		h.adminScheduleByID(w, r)
	case path == "/admin/usuarios":
		h.adminUsers(w, r)
	case strings.HasPrefix(path, "/admin/reportes/"):
		h.adminReport(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

func (h *Handler) authorizeAdmin(w http.ResponseWriter, r *http.Request) bool {
	if h.adminToken == "" {
		writeError(w, r, http.StatusServiceUnavailable, "admin disabled", h.logger)
		return false
	}
	token := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return false
	}
	return true
}

type fieldRequest struct {
	Name   string `json:"nombre"`
	TypeID int    `json:"id_tipo"`
}

func (h *Handler) adminCreateField(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctrl := admin.NewFieldController(h.provider)
		if err := ctrl.Load(r.Context()); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, ctrl.Fields(), h.logger)
	case http.MethodPost:
		var req fieldRequest
		if !decodeBody(w, r, &req, h.logger) {
			return
		}
		ctrl := admin.NewFieldController(h.provider)
		if err := ctrl.Load(r.Context()); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		ctrl.BeginCreate()
		created, err := ctrl.Create(r.Context(), req.Name, req.TypeID)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusCreated, created, h.logger)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) adminFieldByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/admin/canchas/"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid field id", h.logger)
		return
	}

	ctrl := admin.NewFieldController(h.provider)
	if err := ctrl.Load(r.Context()); err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req fieldRequest
		if !decodeBody(w, r, &req, h.logger) {
			return
		}
		if err := ctrl.BeginEdit(id); err != nil {
			writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		updated, err := ctrl.Update(r.Context(), req.Name, req.TypeID)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, updated, h.logger)
	case http.MethodDelete:
		if err := ctrl.Deactivate(r.Context(), id); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

type scheduleRequest struct {
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

func (h *Handler) adminCreateSchedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctrl := admin.NewScheduleController(h.provider)
		if err := ctrl.Load(r.Context()); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, ctrl.Slots(), h.logger)
	case http.MethodPost:
		var req scheduleRequest
		if !decodeBody(w, r, &req, h.logger) {
			return
		}
		ctrl := admin.NewScheduleController(h.provider)
		ctrl.BeginCreate()
		created, err := ctrl.Create(r.Context(), req.StartTime, req.EndTime)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusCreated, created, h.logger)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) adminScheduleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/admin/horarios/"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid schedule id", h.logger)
		return
	}

	ctrl := admin.NewScheduleController(h.provider)
	if err := ctrl.Load(r.Context()); err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req scheduleRequest
		if !decodeBody(w, r, &req, h.logger) {
			return
		}
		if err := ctrl.BeginEdit(id); err != nil {
			writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		updated, err := ctrl.Update(r.Context(), req.StartTime, req.EndTime)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, updated, h.logger)
	case http.MethodDelete:
		if err := ctrl.Deactivate(r.Context(), id); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// adminUsers looks a client up by email (GET) or saves an edited
// profile (PUT).
func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	ctrl := admin.NewUserController(h.provider)
	email := r.URL.Query().Get("email")

	switch r.Method {
	case http.MethodGet:
		customer, err := ctrl.Lookup(r.Context(), email)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, customer, h.logger)
	case http.MethodPut:
		var updated domain.Customer
		if !decodeBody(w, r, &updated, h.logger) {
			return
		}
		if _, err := ctrl.Lookup(r.Context(), email); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		if err := ctrl.BeginEdit(); err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		saved, err := ctrl.Save(r.Context(), updated)
		if err != nil {
			writeFlowError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, saved, h.logger)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// adminReport downloads an upstream PDF, archives a copy, and streams it
// back.
func (h *Handler) adminReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query, name, err := parseReportPath(strings.TrimPrefix(r.URL.Path, "/admin/reportes/"), r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	data, err := h.provider.FetchReport(r.Context(), query)
	if err != nil {
		writeFlowError(w, r, err, h.logger)
		return
	}

	if h.reports != nil {
		if _, err := h.reports.Save(query.Kind, name, data); err != nil {
			if logger := loggerFromContext(r, h.logger); logger != nil {
				logger.Warn("report archive failed", "kind", string(query.Kind), "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseReportPath(rest string, r *http.Request) (providers.ReportQuery, string, error) {
	values := r.URL.Query()
	segments := strings.Split(strings.Trim(rest, "/"), "/")

	switch segments[0] {
	case "confirmacion":
		if len(segments) != 2 {
			return providers.ReportQuery{}, "", fmt.Errorf("reservation id required")
		}
		id, err := strconv.Atoi(segments[1])
		if err != nil || id <= 0 {
			return providers.ReportQuery{}, "", fmt.Errorf("invalid reservation id")
		}
		return providers.ReportQuery{Kind: providers.ReportConfirmation, ReservationID: id},
			fmt.Sprintf("confirmacion-%d", id), nil
	case "cliente":
		if len(segments) != 2 {
			return providers.ReportQuery{}, "", fmt.Errorf("client id required")
		}
		id, err := strconv.Atoi(segments[1])
		if err != nil || id <= 0 {
			return providers.ReportQuery{}, "", fmt.Errorf("invalid client id")
		}
		return providers.ReportQuery{Kind: providers.ReportClient, ClientID: id},
			fmt.Sprintf("cliente-%d", id), nil
	case "cancha":
		if len(segments) != 2 {
			return providers.ReportQuery{}, "", fmt.Errorf("field id required")
		}
		id, err := strconv.Atoi(segments[1])
		if err != nil || id <= 0 {
			return providers.ReportQuery{}, "", fmt.Errorf("invalid field id")
		}
		start := values.Get("fecha_inicio")
		end := values.Get("fecha_fin")
		if start == "" || end == "" {
			return providers.ReportQuery{}, "", fmt.Errorf("fecha_inicio and fecha_fin required")
		}
		return providers.ReportQuery{Kind: providers.ReportField, FieldID: id, StartDate: start, EndDate: end},
			fmt.Sprintf("cancha-%d-%s-%s", id, start, end), nil
	case "canchas-mas-utilizadas":
		topN, _ := strconv.Atoi(values.Get("top_n"))
		return providers.ReportQuery{Kind: providers.ReportTopFields, TopN: topN},
			"canchas-mas-utilizadas", nil
	case "utilizacion-mensual":
		return providers.ReportQuery{Kind: providers.ReportMonthlyUse},
			"utilizacion-mensual", nil
	default:
		return providers.ReportQuery{}, "", fmt.Errorf("unknown report %q", segments[0])
	}
}
