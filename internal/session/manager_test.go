package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	scorer, err := scoring.NewScorer(scoring.DefaultCatalog(), discardLogger())
	require.NoError(t, err)
	store := NewMemoryStore()
	return NewManager(store, scorer, DefaultLimits()), store
}

func TestNewSessionDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.New(ctx, 0)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, scoring.ContextSupplyCrisis, s.Context)
	require.Len(t, s.Suppliers, 3)
	for i, name := range []string{"Supplier A", "Supplier B", "Supplier C"} {
		assert.Equal(t, name, s.Suppliers[i].Name)
		require.Len(t, s.Suppliers[i].Scores, 9)
		for _, v := range s.Suppliers[i].Scores {
			assert.Equal(t, scoring.DefaultScore, v)
		}
	}
}

func TestNewSessionBounds(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for _, n := range []int{-1, 11} {
		_, err := m.New(ctx, n)
		assert.ErrorIs(t, err, ErrSupplierCount, "count %d", n)
	}
	s, err := m.New(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Supplier J", s.Suppliers[9].Name)
}

func TestResizeKeepsExistingColumns(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.New(ctx, 2)
	require.NoError(t, err)
	_, err = m.RenameSupplier(ctx, s.ID, 1, "Globex")
	require.NoError(t, err)
	_, err = m.SetScore(ctx, s.ID, 1, 0, 9)
	require.NoError(t, err)

	grown, err := m.Resize(ctx, s.ID, 4)
	require.NoError(t, err)
	require.Len(t, grown.Suppliers, 4)
	assert.Equal(t, "Globex", grown.Suppliers[1].Name)
	assert.Equal(t, 9.0, grown.Suppliers[1].Scores[0])
	assert.Equal(t, "Supplier D", grown.Suppliers[3].Name)

	shrunk, err := m.Resize(ctx, s.ID, 1)
	require.NoError(t, err)
	require.Len(t, shrunk.Suppliers, 1)
	assert.Equal(t, "Supplier A", shrunk.Suppliers[0].Name)

	_, err = m.Resize(ctx, s.ID, 0)
	assert.ErrorIs(t, err, ErrSupplierCount)
}

func TestSetScoreOutOfRange(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s, _ := m.New(ctx, 1)

	_, err := m.SetScore(ctx, s.ID, 1, 0, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = m.SetScore(ctx, s.ID, 0, 9, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// values outside 1..10 are accepted
	updated, err := m.SetScore(ctx, s.ID, 0, 8, 42)
	require.NoError(t, err)
	assert.Equal(t, 42.0, updated.Suppliers[0].Scores[8])
}

func TestSetScores(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s, _ := m.New(ctx, 1)

	_, err := m.SetScores(ctx, s.ID, 0, []float64{1, 2})
	assert.ErrorIs(t, err, ErrScoreCount)

	scores := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	updated, err := m.SetScores(ctx, s.ID, 0, scores)
	require.NoError(t, err)
	scores[0] = 100
	assert.Equal(t, 1.0, updated.Suppliers[0].Scores[0])
}

func TestSelectUnknownContextLeavesTotalsUnchanged(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s, _ := m.New(ctx, 2)

	_, err := m.SelectContext(ctx, s.ID, scoring.ContextCostReduction)
	require.NoError(t, err)
	_, err = m.SetScore(ctx, s.ID, 0, 2, 9)
	require.NoError(t, err)

	_, before, err := m.Evaluate(ctx, s.ID)
	require.NoError(t, err)

	_, err = m.SelectContext(ctx, s.ID, "Foo")
	var ctxErr *scoring.UnknownContextError
	require.True(t, errors.As(err, &ctxErr), "expected UnknownContextError, got %v", err)

	after, afterEval, err := m.Evaluate(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, scoring.ContextCostReduction, after.Context)
	assert.Equal(t, before.Totals, afterEval.Totals)
}

func TestEvaluateSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s, _ := m.New(ctx, 2)

	_, err := m.SetScores(ctx, s.ID, 1, []float64{10, 10, 10, 10, 10, 10, 10, 10, 10})
	require.NoError(t, err)

	_, ev, err := m.Evaluate(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, ev.Totals[0].Total)
	assert.Equal(t, 1200.0, ev.Totals[1].Total)
	assert.Equal(t, "Supplier B", ev.Ranking[0].Supplier)
}

func TestSessionsAreIsolated(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	a, _ := m.New(ctx, 1)
	b, _ := m.New(ctx, 1)

	_, err := m.SetScore(ctx, a.ID, 0, 0, 1)
	require.NoError(t, err)

	got, err := m.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultScore, got.Suppliers[0].Scores[0])
}

func TestModifyTouchesUpdatedAt(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	s, _ := m.New(ctx, 1)
	m.now = func() time.Time { return base.Add(time.Minute) }
	updated, err := m.RenameSupplier(ctx, s.ID, 0, "Initech")
	require.NoError(t, err)

	assert.Equal(t, base, updated.CreatedAt)
	assert.Equal(t, base.Add(time.Minute), updated.UpdatedAt)
}

func TestUnknownSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := m.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Resize(ctx, id, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = m.Evaluate(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, id), ErrNotFound)
}

func TestDefaultSupplierName(t *testing.T) {
	assert.Equal(t, "Supplier A", DefaultSupplierName(0))
	assert.Equal(t, "Supplier Z", DefaultSupplierName(25))
	assert.Equal(t, "Supplier 27", DefaultSupplierName(26))
}
