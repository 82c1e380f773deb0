package specs

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/services/casefinder"
	"gitlab.com/railsync.net/internal/core/services/syncer"
	"gitlab.com/railsync.net/internal/domain"
	"gitlab.com/railsync.net/internal/handlers/response"
)

// SpecHandler receives spec results posted by the Cypress after:spec hook
type SpecHandler struct {
	synchronizer syncer.ISynchronizer
	logger       primary.Logger
}

// NewSpecHandler creates a new spec handler
func NewSpecHandler(synchronizer syncer.ISynchronizer, logger primary.Logger) *SpecHandler {
	return &SpecHandler{
		synchronizer: synchronizer,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for SpecHandler on the /api subrouter
func (h *SpecHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/specs/results", h.SubmitResults).Methods("POST")
	router.HandleFunc("/cases/extract", h.ExtractCases).Methods("POST")
}

// SubmitResults syncs one spec execution and answers with its report
func (h *SpecHandler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	var req domain.SpecResults
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	report := h.synchronizer.SyncSpec(r.Context(), req)
	response.WriteSuccess(w, report)
}

// ExtractCases reports the case ids tagged in each title
func (h *SpecHandler) ExtractCases(w http.ResponseWriter, r *http.Request) {
	var req ExtractCasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	resp := ExtractCasesResponse{Cases: make(map[string][]domain.CaseID, len(req.Titles))}
	for _, title := range req.Titles {
		resp.Cases[title] = casefinder.TitleToCaseIDs(title)
	}

	response.WriteSuccess(w, resp)
}
