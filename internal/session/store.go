package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrSupplierCount = errors.New("supplier count out of bounds")
	ErrOutOfRange    = errors.New("supplier or criterion index out of range")
	ErrScoreCount    = errors.New("score count does not match criteria")
	ErrStoreClosed   = errors.New("session store closed")
	ErrDuplicateID   = errors.New("session id already exists")
)

// Session is one user's working copy of supplier names, scores and the
// selected context. It lives only in memory.
type Session struct {
	ID        uuid.UUID          `json:"session_id"`
	Context   string             `json:"context"`
	Suppliers []scoring.Supplier `json:"suppliers"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Clone returns a deep copy so callers never share score slices.
func (s *Session) Clone() *Session {
	c := *s
	c.Suppliers = make([]scoring.Supplier, len(s.Suppliers))
	for i, sup := range s.Suppliers {
		c.Suppliers[i] = scoring.Supplier{
			Name:   sup.Name,
			Scores: append([]float64(nil), sup.Scores...),
		}
	}
	return &c
}

type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListExpired(ctx context.Context, idleSince time.Time) ([]*Session, error)
	// DeleteIfIdle removes the session only if it is still not updated since
	// idleSince, and reports whether it did.
	DeleteIfIdle(ctx context.Context, id uuid.UUID, idleSince time.Time) (bool, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
