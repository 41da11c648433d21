package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Procure/internal/export"
	"github.com/MikeSquared-Agency/Procure/internal/hermes"
	"github.com/MikeSquared-Agency/Procure/internal/metrics"
	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
)

type SessionsHandler struct {
	sessions *session.Manager
	hermes   hermes.Client
	metrics  *metrics.Collectors
	logger   *slog.Logger
}

func NewSessionsHandler(m *session.Manager, h hermes.Client, mc *metrics.Collectors, logger *slog.Logger) *SessionsHandler {
	return &SessionsHandler{sessions: m, hermes: h, metrics: mc, logger: logger}
}

type CreateSessionRequest struct {
	Suppliers int `json:"suppliers,omitempty"`
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.sessions.New(r.Context(), req.Suppliers)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	hermes.PublishBestEffort(h.hermes, h.logger, hermes.SubjectSessionCreated(s.ID.String()), hermes.SessionCreatedEvent{
		SessionID: s.ID.String(),
		Context:   s.Context,
		Suppliers: len(s.Suppliers),
		CreatedAt: s.CreatedAt,
	})

	writeJSON(w, http.StatusCreated, s)
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	s, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ResizeRequest struct {
	Count int `json:"count"`
}

func (h *SessionsHandler) Resize(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req ResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := h.sessions.Resize(r.Context(), id, req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type UpdateSupplierRequest struct {
	Name   *string   `json:"name,omitempty"`
	Scores []float64 `json:"scores,omitempty"`
}

// UpdateSupplier renames a supplier and/or replaces its score vector.
// Scores are applied first so a rejected vector leaves the name unchanged.
func (h *SessionsHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	col, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	var req UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == nil && req.Scores == nil {
		writeError(w, http.StatusBadRequest, "name or scores required")
		return
	}

	var s *session.Session
	var err error
	if req.Scores != nil {
		if s, err = h.sessions.SetScores(r.Context(), id, col, req.Scores); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.Name != nil {
		if s, err = h.sessions.RenameSupplier(r.Context(), id, col, *req.Name); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s)
}

type SetScoreRequest struct {
	Score *float64 `json:"score"`
}

func (h *SessionsHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	col, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	criterion, ok := intParam(w, r, "criterion")
	if !ok {
		return
	}
	var req SetScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Score == nil {
		writeError(w, http.StatusBadRequest, "score required")
		return
	}
	s, err := h.sessions.SetScore(r.Context(), id, col, criterion, *req.Score)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type SelectContextRequest struct {
	Context string `json:"context"`
}

func (h *SessionsHandler) SelectContext(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req SelectContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prev, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s, err := h.sessions.SelectContext(r.Context(), id, req.Context)
	if err != nil {
		h.metrics.ObserveError(err)
		writeDomainError(w, err)
		return
	}

	if prev.Context != s.Context {
		hermes.PublishBestEffort(h.hermes, h.logger, hermes.SubjectSessionContext(s.ID.String()), hermes.ContextSelectedEvent{
			SessionID: s.ID.String(),
			Previous:  prev.Context,
			Context:   s.Context,
		})
	}
	writeJSON(w, http.StatusOK, s)
}

// MatrixResponse is a session's evaluation tagged with the session id.
type MatrixResponse struct {
	SessionID string `json:"session_id"`
	*scoring.Evaluation
}

func (h *SessionsHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	s, ev, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	sid := s.ID.String()
	hermes.PublishBestEffort(h.hermes, h.logger, hermes.SubjectMatrixEvaluated(sid), hermes.NewMatrixEvaluatedEvent(sid, ev))
	writeJSON(w, http.StatusOK, MatrixResponse{SessionID: sid, Evaluation: ev})
}

// Export streams the session's matrix as a CSV attachment.
func (h *SessionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	s, ev, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, ev.Table); err != nil {
		h.logger.Error("csv export failed", "session_id", s.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filename := export.Filename(ev.Context)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	n, _ := w.Write(buf.Bytes())

	h.metrics.ObserveExport()
	hermes.PublishBestEffort(h.hermes, h.logger, hermes.SubjectMatrixExported(s.ID.String()), hermes.MatrixExportedEvent{
		SessionID: s.ID.String(),
		Context:   ev.Context,
		Filename:  filename,
		Bytes:     n,
	})
}

func (h *SessionsHandler) evaluate(w http.ResponseWriter, r *http.Request) (*session.Session, *scoring.Evaluation, bool) {
	id, ok := sessionID(w, r)
	if !ok {
		return nil, nil, false
	}
	s, ev, err := h.sessions.Evaluate(r.Context(), id)
	if err != nil {
		if s != nil {
			h.metrics.ObserveError(err)
		}
		writeDomainError(w, err)
		return nil, nil, false
	}
	h.metrics.ObserveEvaluation(ev.Context)
	return s, ev, true
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}
