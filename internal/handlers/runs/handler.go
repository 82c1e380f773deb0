package runs

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/services/run"
	"gitlab.com/railsync.net/internal/handlers/response"
)

// RunHandler handles run API requests
type RunHandler struct {
	runService run.IRunService
	logger     primary.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(runService run.IRunService, logger primary.Logger) *RunHandler {
	return &RunHandler{
		runService: runService,
		logger:     logger,
	}
}

// RegisterRoutes registers the API routes for RunHandler on the /api subrouter
func (h *RunHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/runs/{runId:[0-9]+}", h.GetRun).Methods("GET")
	router.HandleFunc("/runs/{runId:[0-9]+}/close", h.CloseRun).Methods("POST")
	router.HandleFunc("/runs/{runId:[0-9]+}/syncs", h.GetSyncs).Methods("GET")
}

func (h *RunHandler) runID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["runId"]
	runID, err := strconv.Atoi(raw)
	if err != nil || runID <= 0 {
		h.logger.Error("Invalid run ID", "id", raw)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid run ID", StatusCode: http.StatusBadRequest})
		return 0, false
	}
	return runID, true
}

// GetRun handles run retrieval requests
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := h.runID(w, r)
	if !ok {
		return
	}

	testRun, err := h.runService.GetRun(r.Context(), runID)
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, testRun)
}

// CloseRun handles run close requests
func (h *RunHandler) CloseRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := h.runID(w, r)
	if !ok {
		return
	}

	testRun, err := h.runService.CloseRun(r.Context(), runID)
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, testRun)
}

// GetSyncs returns the ledger history of the run
func (h *RunHandler) GetSyncs(w http.ResponseWriter, r *http.Request) {
	runID, ok := h.runID(w, r)
	if !ok {
		return
	}

	reports, err := h.runService.GetSyncHistory(r.Context(), runID)
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, map[string]interface{}{"runId": runID, "syncs": reports})
}
