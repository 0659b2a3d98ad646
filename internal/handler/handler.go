package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avelier/forecast-service/internal/cache"
	"github.com/avelier/forecast-service/internal/engine"
	"github.com/avelier/forecast-service/internal/export"
	"github.com/avelier/forecast-service/internal/repository"
	"github.com/avelier/forecast-service/internal/service"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type scenarioRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Assumptions engine.AssumptionSet `json:"assumptions"`
}

type emailRequest struct {
	To string `json:"to"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Compute runs the projection engine over a posted assumption set without
// persisting anything. Available anonymously.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var a engine.AssumptionSet
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid assumption set")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Compute(a))
}

// DefaultAssumptions returns the starter model for a new scenario.
func (h *Handler) DefaultAssumptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, engine.DefaultAssumptions())
}

// CreateScenario stores a new named scenario for the authenticated user
func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "scenario name is required")
		return
	}

	scenario, err := h.svc.CreateScenario(r.Context(), req.Name, req.Description, req.Assumptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create scenario")
		return
	}
	writeJSON(w, http.StatusCreated, scenario)
}

// ListScenarios returns the authenticated user's scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.svc.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scenarios")
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// GetScenario returns one scenario with its assumptions
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.svc.GetScenario(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}

// UpdateScenario replaces a scenario's name, description and assumptions
func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "scenario name is required")
		return
	}

	scenario, err := h.svc.UpdateScenario(r.Context(), mux.Vars(r)["id"], req.Name, req.Description, req.Assumptions)
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}

// DeleteScenario soft-deletes a scenario
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteScenario(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeScenarioError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScenarioMetrics computes metrics for a stored scenario
func (h *Handler) ScenarioMetrics(w http.ResponseWriter, r *http.Request) {
	_, metrics, err := h.svc.ScenarioMetrics(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeScenarioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// ExportScenario streams the scenario report in the requested format
// (csv, pdf or xml).
func (h *Handler) ExportScenario(w http.ResponseWriter, r *http.Request) {
	scenario, metrics, err := h.svc.ScenarioMetrics(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeScenarioError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "csv", "":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, scenario.Name))
		if err := export.WriteCSV(w, scenario, metrics); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to export scenario")
		}
	case "xml":
		w.Header().Set("Content-Type", "application/xml")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xml"`, scenario.Name))
		if err := export.WriteXML(w, scenario, metrics); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to export scenario")
		}
	case "pdf":
		report, err := export.GeneratePDF(scenario, metrics)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to export scenario")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, scenario.Name))
		w.Write(report.Bytes())
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
	}
}

// EmailReport sends the PDF report for a scenario to the given address
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" {
		writeError(w, http.StatusBadRequest, "recipient address is required")
		return
	}

	if err := h.svc.EmailReport(r.Context(), mux.Vars(r)["id"], req.To); err != nil {
		if errors.Is(err, repository.ErrScenarioNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to send report")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// SaveDraft caches the user's in-progress assumption set
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var a engine.AssumptionSet
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid assumption set")
		return
	}
	if err := h.svc.SaveDraft(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadDraft restores the user's in-progress assumption set
func (h *Handler) LoadDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.svc.LoadDraft(r.Context())
	if err != nil {
		if errors.Is(err, cache.ErrNoDraft) {
			writeError(w, http.StatusNotFound, "no draft found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func writeScenarioError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrScenarioNotFound) {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
