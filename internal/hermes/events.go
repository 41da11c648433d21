package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

type SessionCreatedEvent struct {
	SessionID string    `json:"session_id"`
	Context   string    `json:"context"`
	Suppliers int       `json:"suppliers"`
	CreatedAt time.Time `json:"created_at"`
}

type ContextSelectedEvent struct {
	SessionID string `json:"session_id"`
	Previous  string `json:"previous"`
	Context   string `json:"context"`
}

// MatrixEvaluatedEvent carries totals keyed by column so duplicate supplier
// names stay distinguishable.
type MatrixEvaluatedEvent struct {
	SessionID string          `json:"session_id,omitempty"`
	Context   string          `json:"context"`
	Totals    []SupplierTotal `json:"totals"`
}

type SupplierTotal struct {
	Column   int     `json:"column"`
	Supplier string  `json:"supplier"`
	Total    float64 `json:"total"`
	Rank     int     `json:"rank"`
}

type MatrixExportedEvent struct {
	SessionID string `json:"session_id"`
	Context   string `json:"context"`
	Filename  string `json:"filename"`
	Bytes     int    `json:"bytes"`
}

type SessionExpiredEvent struct {
	SessionID string    `json:"session_id"`
	IdleSince time.Time `json:"idle_since"`
}

// NewMatrixEvaluatedEvent summarises an evaluation in column order.
func NewMatrixEvaluatedEvent(sessionID string, ev *scoring.Evaluation) MatrixEvaluatedEvent {
	ranks := make(map[int]int, len(ev.Ranking))
	for _, r := range ev.Ranking {
		ranks[r.Column] = r.Rank
	}
	totals := make([]SupplierTotal, len(ev.Totals))
	for i, t := range ev.Totals {
		totals[i] = SupplierTotal{Column: t.Column, Supplier: t.Supplier, Total: t.Total, Rank: ranks[t.Column]}
	}
	return MatrixEvaluatedEvent{SessionID: sessionID, Context: ev.Context, Totals: totals}
}
