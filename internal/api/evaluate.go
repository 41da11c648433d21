package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/Procure/internal/metrics"
	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

// EvaluateHandler scores a full set of suppliers in one request without
// touching any session.
type EvaluateHandler struct {
	scorer  *scoring.Scorer
	metrics *metrics.Collectors
}

func NewEvaluateHandler(s *scoring.Scorer, m *metrics.Collectors) *EvaluateHandler {
	return &EvaluateHandler{scorer: s, metrics: m}
}

type EvaluateRequest struct {
	Context   string             `json:"context"`
	Suppliers []scoring.Supplier `json:"suppliers"`
}

func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Context == "" {
		writeError(w, http.StatusBadRequest, "context required")
		return
	}

	ev, err := h.scorer.Evaluate(req.Context, req.Suppliers)
	if err != nil {
		h.metrics.ObserveError(err)
		writeDomainError(w, err)
		return
	}
	h.metrics.ObserveEvaluation(ev.Context)
	writeJSON(w, http.StatusOK, ev)
}
