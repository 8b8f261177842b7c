package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fortuna/rinkside/internal/dashboard"
	"github.com/fortuna/rinkside/internal/export"
	"github.com/fortuna/rinkside/internal/model"
	"github.com/fortuna/rinkside/internal/pipeline"
	"github.com/fortuna/rinkside/internal/season"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	svc *season.Service
}

// NewHandler creates a new handler around the season service.
func NewHandler(svc *season.Service) *Handler {
	return &Handler{svc: svc}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"service":  "rinkside",
		"has_data": h.svc.Snapshot() != nil,
	})
}

// Index renders the dashboard page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	cfg := h.svc.Config()
	page := dashboard.PageData{
		TeamAbbrev: cfg.TeamAbbrev,
		SeasonID:   cfg.SeasonID,
		Data:       h.svc.Snapshot(),
		Selected:   r.URL.Query()["player"],
		Refreshing: h.svc.Refreshing(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.RenderIndex(w, page); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render dashboard", err)
	}
}

// snapshot fetches the current data or answers 404 when nothing has been
// ingested yet.
func (h *Handler) snapshot(w http.ResponseWriter) *pipeline.SeasonData {
	data := h.svc.Snapshot()
	if data == nil {
		respondError(w, http.StatusNotFound, "No season data ingested yet", nil)
		return nil
	}
	return data
}

// GetGames returns the games table.
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": data.Games,
		"count": len(data.Games),
	})
}

// GetGoals returns the goals table.
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"goals": data.Goals,
		"count": len(data.Goals),
	})
}

// GetRoster returns the flattened roster table.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roster": data.Roster,
		"count":  len(data.Roster),
	})
}

// GetReport returns the last run report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"report":     data.Report,
		"fetched_at": data.FetchedAt,
	})
}

// GetPointsSeries derives the per-game scoring series for one player.
func (h *Handler) GetPointsSeries(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		respondError(w, http.StatusBadRequest, "Missing 'player' query parameter", nil)
		return
	}

	data := h.snapshot(w)
	if data == nil {
		return
	}

	series := data.PointsSeries(player)
	if series == nil {
		series = []model.PointsSeriesPoint{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player": player,
		"series": series,
	})
}

// TriggerRefresh starts a background ingestion run.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	// Detached from the request context: the run outlives this response.
	if err := h.svc.StartRefresh(context.Background()); err != nil {
		if errors.Is(err, season.ErrRefreshInProgress) {
			respondError(w, http.StatusConflict, "A refresh is already running", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to start refresh", err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "refresh started",
	})
}

// ExportGames streams the games table as CSV.
func (h *Handler) ExportGames(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	writeCSVHeaders(w, export.GamesFilename)
	export.WriteGames(w, data.Games)
}

// ExportGoals streams the goals table as CSV.
func (h *Handler) ExportGoals(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	writeCSVHeaders(w, export.GoalsFilename)
	export.WriteGoals(w, data.Goals)
}

// ExportRoster streams the roster table as CSV.
func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	data := h.snapshot(w)
	if data == nil {
		return
	}
	writeCSVHeaders(w, export.RosterFilename)
	export.WriteRoster(w, data.Roster)
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
