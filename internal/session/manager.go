package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

// Limits bounds what a session may hold.
type Limits struct {
	MinSuppliers     int
	MaxSuppliers     int
	DefaultSuppliers int
}

// DefaultLimits allows 1 to 10 suppliers and starts with 3.
func DefaultLimits() Limits {
	return Limits{MinSuppliers: 1, MaxSuppliers: 10, DefaultSuppliers: 3}
}

// Manager applies form edits to sessions held in a Store and evaluates them
// with a shared Scorer.
type Manager struct {
	store  Store
	scorer *scoring.Scorer
	limits Limits
	now    func() time.Time

	// serialises read-modify-write cycles against the store
	mu sync.Mutex
}

func NewManager(s Store, scorer *scoring.Scorer, limits Limits) *Manager {
	return &Manager{store: s, scorer: scorer, limits: limits, now: time.Now}
}

// Limits returns the configured supplier bounds.
func (m *Manager) Limits() Limits {
	return m.limits
}

// DefaultSupplierName returns the placeholder name for the supplier in column i.
func DefaultSupplierName(i int) string {
	if i >= 0 && i < 26 {
		return "Supplier " + string(rune('A'+i))
	}
	return fmt.Sprintf("Supplier %d", i+1)
}

// New creates a session with count default suppliers under the first
// configured context. A count of 0 means the default count.
func (m *Manager) New(ctx context.Context, count int) (*Session, error) {
	if count == 0 {
		count = m.limits.DefaultSuppliers
	}
	if err := m.checkCount(count); err != nil {
		return nil, err
	}

	criteria := len(m.scorer.Criteria())
	suppliers := make([]scoring.Supplier, count)
	for i := range suppliers {
		suppliers[i] = scoring.NewSupplier(DefaultSupplierName(i), criteria)
	}

	now := m.now()
	s := &Session{
		ID:        uuid.New(),
		Context:   m.scorer.Contexts()[0],
		Suppliers: suppliers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return m.store.Get(ctx, id)
}

func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	return m.store.Delete(ctx, id)
}

// Resize grows or shrinks the supplier list. Existing columns keep their
// names and scores; new columns get default names and scores.
func (m *Manager) Resize(ctx context.Context, id uuid.UUID, count int) (*Session, error) {
	if err := m.checkCount(count); err != nil {
		return nil, err
	}
	return m.modify(ctx, id, func(s *Session) error {
		if count <= len(s.Suppliers) {
			s.Suppliers = s.Suppliers[:count]
			return nil
		}
		criteria := len(m.scorer.Criteria())
		for i := len(s.Suppliers); i < count; i++ {
			s.Suppliers = append(s.Suppliers, scoring.NewSupplier(DefaultSupplierName(i), criteria))
		}
		return nil
	})
}

// RenameSupplier sets the display name of the supplier in column col.
func (m *Manager) RenameSupplier(ctx context.Context, id uuid.UUID, col int, name string) (*Session, error) {
	return m.modify(ctx, id, func(s *Session) error {
		if col < 0 || col >= len(s.Suppliers) {
			return fmt.Errorf("supplier %d: %w", col, ErrOutOfRange)
		}
		s.Suppliers[col].Name = name
		return nil
	})
}

// SetScore sets one raw score. No bounds are enforced on the value.
func (m *Manager) SetScore(ctx context.Context, id uuid.UUID, col, criterion int, value float64) (*Session, error) {
	return m.modify(ctx, id, func(s *Session) error {
		if col < 0 || col >= len(s.Suppliers) {
			return fmt.Errorf("supplier %d: %w", col, ErrOutOfRange)
		}
		if criterion < 0 || criterion >= len(s.Suppliers[col].Scores) {
			return fmt.Errorf("criterion %d: %w", criterion, ErrOutOfRange)
		}
		s.Suppliers[col].Scores[criterion] = value
		return nil
	})
}

// SetScores replaces a supplier's whole score vector.
func (m *Manager) SetScores(ctx context.Context, id uuid.UUID, col int, scores []float64) (*Session, error) {
	criteria := len(m.scorer.Criteria())
	if len(scores) != criteria {
		return nil, fmt.Errorf("got %d scores for %d criteria: %w", len(scores), criteria, ErrScoreCount)
	}
	return m.modify(ctx, id, func(s *Session) error {
		if col < 0 || col >= len(s.Suppliers) {
			return fmt.Errorf("supplier %d: %w", col, ErrOutOfRange)
		}
		s.Suppliers[col].Scores = append([]float64(nil), scores...)
		return nil
	})
}

// SelectContext switches the session's weight profile. An unknown context
// leaves the session untouched.
func (m *Manager) SelectContext(ctx context.Context, id uuid.UUID, label string) (*Session, error) {
	if _, err := m.scorer.Profile(label); err != nil {
		return nil, err
	}
	return m.modify(ctx, id, func(s *Session) error {
		s.Context = label
		return nil
	})
}

// Evaluate recomputes the matrix for the session's current inputs.
func (m *Manager) Evaluate(ctx context.Context, id uuid.UUID) (*Session, *scoring.Evaluation, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ev, err := m.scorer.Evaluate(s.Context, s.Suppliers)
	if err != nil {
		return s, nil, err
	}
	return s, ev, nil
}

func (m *Manager) modify(ctx context.Context, id uuid.UUID, fn func(s *Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = m.now()
	if err := m.store.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return s, nil
}

func (m *Manager) checkCount(count int) error {
	if count < m.limits.MinSuppliers || count > m.limits.MaxSuppliers {
		return fmt.Errorf("%d not in [%d, %d]: %w", count, m.limits.MinSuppliers, m.limits.MaxSuppliers, ErrSupplierCount)
	}
	return nil
}
