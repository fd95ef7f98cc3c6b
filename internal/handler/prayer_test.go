package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akhalil/essam-memorial/internal/apperror"
	"github.com/akhalil/essam-memorial/internal/handler"
	"github.com/akhalil/essam-memorial/internal/model"
	"github.com/akhalil/essam-memorial/internal/timefmt"
)

// MockService implements handler.PrayerService with canned results.
type MockService struct {
	ListResult   []model.Prayer
	ListErr      error
	CreateResult *model.Prayer
	CreateErr    error
	DeleteErr    error

	CapturedText string
	CapturedName string
	CapturedID   string
}

func (m *MockService) Create(_ context.Context, text, name string) (*model.Prayer, error) {
	m.CapturedText = text
	m.CapturedName = name
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.CreateResult, nil
}

func (m *MockService) List(_ context.Context) ([]model.Prayer, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

func (m *MockService) Delete(_ context.Context, id string) error {
	m.CapturedID = id
	return m.DeleteErr
}

func newTestHandler(svc *MockService, now time.Time) *handler.PrayerHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	formatter := timefmt.New("UTC").WithClock(func() time.Time { return now })
	return handler.NewPrayerHandler(svc, formatter, logger)
}

func TestHandleList(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("formats timestamps and omits empty names", func(t *testing.T) {
		svc := &MockService{
			ListResult: []model.Prayer{
				{ID: "b2", Text: "Ya Rab", Name: "Sara", CreatedAt: now.Add(-30 * time.Second)},
				{ID: "a1", Text: "اللهم ارحمه", CreatedAt: now.Add(-5 * time.Minute)},
			},
		}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodGet, "/api/prayers", nil)
		rr := httptest.NewRecorder()
		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body []map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Len(t, body, 2)

		assert.Equal(t, "b2", body[0]["id"])
		assert.Equal(t, "Sara", body[0]["name"])
		assert.Equal(t, "Just now", body[0]["timestamp"])

		assert.Equal(t, "5 minutes ago", body[1]["timestamp"])
		_, hasName := body[1]["name"]
		assert.False(t, hasName, "anonymous prayer must omit the name field")
	})

	t.Run("disables caching", func(t *testing.T) {
		h := newTestHandler(&MockService{}, now)

		rr := httptest.NewRecorder()
		h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/api/prayers", nil))

		assert.Equal(t, "no-cache, no-store, must-revalidate", rr.Header().Get("Cache-Control"))
		assert.Equal(t, "no-cache", rr.Header().Get("Pragma"))
		assert.Equal(t, "0", rr.Header().Get("Expires"))
	})

	t.Run("empty store returns empty array", func(t *testing.T) {
		h := newTestHandler(&MockService{}, now)

		rr := httptest.NewRecorder()
		h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/api/prayers", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})

	t.Run("store failure yields 500 with details", func(t *testing.T) {
		svc := &MockService{ListErr: errors.New("connection refused")}
		h := newTestHandler(svc, now)

		rr := httptest.NewRecorder()
		h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/api/prayers", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Failed to fetch prayers", body.Error)
		assert.Contains(t, body.Details, "connection refused")
	})
}

func TestHandleCreate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("valid submission", func(t *testing.T) {
		svc := &MockService{
			CreateResult: &model.Prayer{ID: "c1", Text: "Ya Rab", Name: "Sara", CreatedAt: now},
		}
		h := newTestHandler(svc, now)

		reqBody := `{"text":"Ya Rab","name":"Sara"}`
		req := httptest.NewRequest(http.MethodPost, "/api/prayers", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Ya Rab", svc.CapturedText)
		assert.Equal(t, "Sara", svc.CapturedName)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "c1", body["id"])
		assert.Equal(t, "Ya Rab", body["text"])
		assert.Equal(t, "Sara", body["name"])
		assert.Equal(t, "Just now", body["timestamp"])
	})

	t.Run("empty text rejected with 400", func(t *testing.T) {
		svc := &MockService{
			CreateErr: apperror.ValidationFailed("text", "Prayer text is required"),
		}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodPost, "/api/prayers", bytes.NewBufferString(`{"text":"   "}`))
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var body handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Prayer text is required", body.Error)
		assert.Empty(t, body.Details)
	})

	t.Run("malformed JSON rejected with 400", func(t *testing.T) {
		h := newTestHandler(&MockService{}, now)

		req := httptest.NewRequest(http.MethodPost, "/api/prayers", bytes.NewBufferString(`{"text":`))
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store failure yields 500 with details", func(t *testing.T) {
		svc := &MockService{CreateErr: errors.New("too many connections")}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodPost, "/api/prayers", bytes.NewBufferString(`{"text":"dua"}`))
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Failed to create prayer", body.Error)
		assert.Contains(t, body.Details, "too many connections")
	})
}

func TestHandleDelete(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		svc := &MockService{}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodDelete, "/api/prayers?id=c1", nil)
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "c1", svc.CapturedID)
		assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	})

	t.Run("missing id rejected with 400", func(t *testing.T) {
		svc := &MockService{
			DeleteErr: apperror.ValidationFailed("id", "Prayer ID is required"),
		}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodDelete, "/api/prayers", nil)
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		svc := &MockService{DeleteErr: apperror.NotFound("Prayer", "999999")}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodDelete, "/api/prayers?id=999999", nil)
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var body handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Prayer not found", body.Error)
	})

	t.Run("store failure yields 500", func(t *testing.T) {
		svc := &MockService{DeleteErr: errors.New("broken pipe")}
		h := newTestHandler(svc, now)

		req := httptest.NewRequest(http.MethodDelete, "/api/prayers?id=c1", nil)
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	handler.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])

	_, err := time.Parse(time.RFC3339, body["timestamp"])
	assert.NoError(t, err)
}
