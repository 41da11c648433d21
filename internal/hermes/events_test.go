package hermes

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

type recordingClient struct {
	subjects []string
	payloads []interface{}
	err      error
}

func (r *recordingClient) Publish(subject string, data interface{}) error {
	r.subjects = append(r.subjects, subject)
	r.payloads = append(r.payloads, data)
	return r.err
}

func (r *recordingClient) Close() {}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "procure.session.abc.created", SubjectSessionCreated("abc"))
	assert.Equal(t, "procure.session.abc.context", SubjectSessionContext("abc"))
	assert.Equal(t, "procure.session.abc.expired", SubjectSessionExpired("abc"))
	assert.Equal(t, "procure.matrix.abc.evaluated", SubjectMatrixEvaluated("abc"))
	assert.Equal(t, "procure.matrix.abc.exported", SubjectMatrixExported("abc"))
}

func TestNewMatrixEvaluatedEvent(t *testing.T) {
	s, err := scoring.NewScorer(scoring.Catalog{
		Criteria: []scoring.Criterion{{Name: "A"}, {Name: "B"}},
		Profiles: []scoring.WeightProfile{{Context: "ctx", Weights: []int{10, 20}}},
	}, slog.Default())
	require.NoError(t, err)

	ev, err := s.Evaluate("ctx", []scoring.Supplier{
		{Name: "X", Scores: []float64{5, 5}},
		{Name: "Y", Scores: []float64{8, 2}},
	})
	require.NoError(t, err)

	event := NewMatrixEvaluatedEvent("sess-1", ev)
	assert.Equal(t, "sess-1", event.SessionID)
	assert.Equal(t, "ctx", event.Context)
	assert.Equal(t, []SupplierTotal{
		{Column: 0, Supplier: "X", Total: 150, Rank: 1},
		{Column: 1, Supplier: "Y", Total: 120, Rank: 2},
	}, event.Totals)
}

func TestPublishBestEffort(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	t.Run("nil client", func(t *testing.T) {
		PublishBestEffort(nil, logger, "procure.session.x.created", nil)
		assert.Empty(t, logs.String())
	})

	t.Run("publishes", func(t *testing.T) {
		rc := &recordingClient{}
		PublishBestEffort(rc, logger, SubjectSessionCreated("x"), SessionCreatedEvent{SessionID: "x"})
		assert.Equal(t, []string{"procure.session.x.created"}, rc.subjects)
	})

	t.Run("logs failure", func(t *testing.T) {
		rc := &recordingClient{err: errors.New("boom")}
		PublishBestEffort(rc, logger, SubjectMatrixExported("x"), MatrixExportedEvent{SessionID: "x"})
		assert.Contains(t, logs.String(), "event publish failed")
		assert.Contains(t, logs.String(), "boom")
	})
}
