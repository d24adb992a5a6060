package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	"github.com/gorilla/mux"
)

type FirstCommitHandler struct {
	resolver Resolver
	ledger   Ledger
}

func NewFirstCommitHandler(resolver Resolver, ledger Ledger) *FirstCommitHandler {
	return &FirstCommitHandler{
		resolver: resolver,
		ledger:   ledger,
	}
}

func (h *FirstCommitHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/first-commit", h.getFirstCommit).Methods("GET")
	r.HandleFunc("/lookups/recent", h.getRecentLookups).Methods("GET")
	r.HandleFunc("/lookups/top-usernames", h.getTopUsernames).Methods("GET")
}

func writeSuccess(w http.ResponseWriter, data interface{}, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// getFirstCommit godoc
// @Summary Get First Commit
// @Description Resolve the first commit of the user's oldest repository. Failures are reported in the body, never through the status code.
// @Tags FirstCommit
// @Produce json
// @Param username query string true "GitHub username"
// @Param strategy query string false "Resolution strategy" Enums(offset-rewrite, search-based)
// @Success 200 {object} models.ResolutionResult
// @Router /first-commit [get]
func (h *FirstCommitHandler) getFirstCommit(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	strategy := h.resolver.StrategyName(r.URL.Query().Get("strategy"))

	start := time.Now()
	result := h.resolver.Resolve(r.Context(), strategy, username)
	elapsed := time.Since(start)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Warn("Failed to write first commit response for %q: %v", username, err)
	}

	if h.ledger == nil {
		return
	}
	lookup := models.NewLookup(username, strategy, result, elapsed)
	if lookup.Username == "" {
		return
	}
	h.ledger.Record(context.WithoutCancel(r.Context()), lookup)
}

// getRecentLookups godoc
// @Summary Recent Lookups
// @Description List the most recent resolutions served, newest first
// @Tags Ledger
// @Produce json
// @Param limit query int false "Max lookups to return" default(20)
// @Success 200 {array} models.Lookup
// @Failure 503 {object} errors.HTTPErrorResponse "Ledger not configured"
// @Failure 500 {object} errors.HTTPErrorResponse "Internal Server Error"
// @Router /lookups/recent [get]
func (h *FirstCommitHandler) getRecentLookups(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if h.ledger == nil {
		errors.WriteHTTPError(w, errLedgerUnavailable())
		return
	}

	lookups, err := h.ledger.RecentLookups(r.Context(), limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	if lookups == nil {
		lookups = []models.Lookup{}
	}

	logger.Info("Fetched %d recent lookups", len(lookups))
	writeSuccess(w, lookups, "Successfully fetched recent lookups")
}

// getTopUsernames godoc
// @Summary Top Usernames
// @Description Usernames ranked by how often they were looked up
// @Tags Ledger
// @Produce json
// @Param limit query int false "Max usernames to return" default(20)
// @Success 200 {array} models.UsernameLookupCount
// @Failure 503 {object} errors.HTTPErrorResponse "Ledger not configured"
// @Failure 500 {object} errors.HTTPErrorResponse "Internal Server Error"
// @Router /lookups/top-usernames [get]
func (h *FirstCommitHandler) getTopUsernames(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if h.ledger == nil {
		errors.WriteHTTPError(w, errLedgerUnavailable())
		return
	}

	top, err := h.ledger.TopUsernames(r.Context(), limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	if top == nil {
		top = []models.UsernameLookupCount{}
	}

	logger.Info("Fetched %d top usernames", len(top))
	writeSuccess(w, top, "Successfully fetched top usernames")
}

func errLedgerUnavailable() error {
	return errors.New(
		errors.RefLedgerUnavailable,
		"Lookup ledger is not configured",
		"Set DB_PATH to record and query lookups",
		nil,
		errors.LevelWarning,
	)
}

// * Health is the liveness probe, mounted outside /v1
func Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}
