// Package handler contains the HTTP request handlers: the prayer API, the
// health probe, and the memorial page itself.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akhalil/essam-memorial/internal/model"
	"github.com/akhalil/essam-memorial/internal/timefmt"
)

// PrayerService is what the handler needs from the business layer.
type PrayerService interface {
	Create(ctx context.Context, text, name string) (*model.Prayer, error)
	List(ctx context.Context) ([]model.Prayer, error)
	Delete(ctx context.Context, id string) error
}

// PrayerHandler exposes the prayer wall over JSON/HTTP.
type PrayerHandler struct {
	service   PrayerService
	formatter *timefmt.Formatter
	logger    *slog.Logger
}

// NewPrayerHandler creates a PrayerHandler.
func NewPrayerHandler(service PrayerService, formatter *timefmt.Formatter, logger *slog.Logger) *PrayerHandler {
	return &PrayerHandler{
		service:   service,
		formatter: formatter,
		logger:    logger,
	}
}

// prayerResponse is the wire shape of a prayer. The id is an opaque
// string, name is omitted for anonymous prayers, and timestamp is the
// display string computed at response time, not the stored instant.
type prayerResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Name      string `json:"name,omitempty"`
	Timestamp string `json:"timestamp"`
}

type createPrayerRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// HandleList returns all prayers, newest first.
//
// GET /api/prayers
//
// The response must never be served from an intermediate cache: the
// client polls this endpoint and has to observe current state.
func (h *PrayerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	setNoCache(w)

	prayers, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch prayers")
		return
	}

	responses := make([]prayerResponse, 0, len(prayers))
	for _, p := range prayers {
		responses = append(responses, prayerResponse{
			ID:        p.ID,
			Text:      p.Text,
			Name:      p.Name,
			Timestamp: h.formatter.Format(p.CreatedAt),
		})
	}

	writeJSON(w, http.StatusOK, responses)
}

// HandleCreate stores a submitted prayer.
//
// POST /api/prayers {"text": "...", "name": "..."}
//
// The returned timestamp is fixed to "Just now": zero time has elapsed
// for a record created in this request.
func (h *PrayerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPrayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid prayer JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	prayer, err := h.service.Create(r.Context(), req.Text, req.Name)
	if err != nil {
		writeError(w, err, "Failed to create prayer")
		return
	}

	writeJSON(w, http.StatusCreated, prayerResponse{
		ID:        prayer.ID,
		Text:      prayer.Text,
		Name:      prayer.Name,
		Timestamp: "Just now",
	})
}

// HandleDelete removes a prayer named by the id query parameter.
//
// DELETE /api/prayers?id=<id>
func (h *PrayerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete prayer")
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}

// setNoCache disables caching at every layer between the store and the
// polling client, including social-referrer CDNs.
func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
