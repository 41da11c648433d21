package wizard

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
)

func TestParseCount(t *testing.T) {
	limits := session.DefaultLimits()
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 10 ", 10, false},
		{"1", 1, false},
		{"0", 0, true},
		{"11", 0, true},
		{"two", 0, true},
		{"", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseCount(tt.input, limits)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScoreAcceptsAnyNumber(t *testing.T) {
	for _, s := range []string{"5", "7.5", "-2", "42"} {
		_, err := parseScore(s)
		assert.NoError(t, err, s)
	}
	_, err := parseScore("high")
	assert.Error(t, err)

	v, err := parseScore("  ")
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultScore, v)
}

func TestParseScoreRejectsNonFinite(t *testing.T) {
	for _, s := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity", "1e999"} {
		_, err := parseScore(s)
		assert.Error(t, err, s)
	}
}

func smallCatalog() scoring.Catalog {
	return scoring.Catalog{
		Criteria: []scoring.Criterion{{Name: "A"}, {Name: "B"}},
		Profiles: []scoring.WeightProfile{
			{Context: "P1", Weights: []int{1, 1}},
			{Context: "P2", Weights: []int{2, 2}},
		},
	}
}

func TestRunReadsPipedAnswers(t *testing.T) {
	in := strings.NewReader("1\nX\n8\n2\n2\n")
	var out bytes.Buffer

	res, err := Run(in, &out, smallCatalog(), Options{Limits: session.DefaultLimits()})
	require.NoError(t, err)
	assert.Equal(t, "P2", res.Context)
	require.Len(t, res.Suppliers, 1)
	assert.Equal(t, "X", res.Suppliers[0].Name)
	assert.Equal(t, []float64{8, 2}, res.Suppliers[0].Scores)
}

func TestRunRepromptsInvalidAnswers(t *testing.T) {
	in := strings.NewReader("zero\n12\n2\nAcme\nBeta\nhigh\n7\n1.5\nNaN\n3\n4\n1\n")
	var out bytes.Buffer

	res, err := Run(in, &out, smallCatalog(), Options{Limits: session.DefaultLimits()})
	require.NoError(t, err)
	assert.Equal(t, "P1", res.Context)
	require.Len(t, res.Suppliers, 2)
	assert.Equal(t, "Acme", res.Suppliers[0].Name)
	assert.Equal(t, []float64{7, 1.5}, res.Suppliers[0].Scores)
	assert.Equal(t, "Beta", res.Suppliers[1].Name)
	assert.Equal(t, []float64{3, 4}, res.Suppliers[1].Scores)
	assert.Contains(t, out.String(), "enter a whole number")
	assert.Contains(t, out.String(), "enter a number")
}

func TestRunBlankAnswersKeepDefaults(t *testing.T) {
	limits := session.DefaultLimits()
	limits.DefaultSuppliers = 1
	in := strings.NewReader("\n\n\n\n\n")
	var out bytes.Buffer

	res, err := Run(in, &out, smallCatalog(), Options{Limits: limits})
	require.NoError(t, err)
	assert.Equal(t, "P1", res.Context)
	require.Len(t, res.Suppliers, 1)
	assert.Equal(t, session.DefaultSupplierName(0), res.Suppliers[0].Name)
	assert.Equal(t, []float64{scoring.DefaultScore, scoring.DefaultScore}, res.Suppliers[0].Scores)
}

func TestRunFailsWhenInputEndsEarly(t *testing.T) {
	in := strings.NewReader("2\nAcme\n")
	var out bytes.Buffer

	_, err := Run(in, &out, smallCatalog(), Options{Limits: session.DefaultLimits()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputEnded)
}

func TestByteReaderHandsOutOneByte(t *testing.T) {
	br := &byteReader{r: strings.NewReader("ab")}
	buf := make([]byte, 8)

	n, err := br.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte('a'), buf[0])
	assert.False(t, br.eof)

	_, _ = br.Read(buf)
	_, err = br.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, br.eof)
}

func TestBuildResult(t *testing.T) {
	res, err := buildResult(scoring.ContextCostReduction,
		[]string{" Acme ", "Acme"},
		[][]string{{"5", "8"}, {"1", "2.5"}},
	)
	require.NoError(t, err)
	assert.Equal(t, scoring.ContextCostReduction, res.Context)
	require.Len(t, res.Suppliers, 2)
	assert.Equal(t, "Acme", res.Suppliers[0].Name)
	assert.Equal(t, "Acme", res.Suppliers[1].Name)
	assert.Equal(t, []float64{1, 2.5}, res.Suppliers[1].Scores)

	_, err = buildResult("x", []string{"A"}, [][]string{{"nope"}})
	assert.Error(t, err)
}

func TestCriterionHelp(t *testing.T) {
	c := scoring.DefaultCatalog().Criteria[0]
	help := CriterionHelp(c)
	assert.True(t, strings.HasPrefix(help, c.Description))
	assert.Contains(t, help, "1-3: ")
	assert.Contains(t, help, "7-10: ")

	assert.Equal(t, "4-6: ok", CriterionHelp(scoring.Criterion{
		Name:     "Bare",
		Guidance: []scoring.GuidanceBand{{Range: "4-6", Text: "ok"}},
	}))
}

func TestRenderTable(t *testing.T) {
	table, err := scoring.ComputeWeightedScores(
		[]scoring.Criterion{{Name: "A"}, {Name: "Bé"}},
		[]int{10, 20},
		[]scoring.Supplier{{Name: "X", Scores: []float64{5, 5}}, {Name: "Yy", Scores: []float64{1.5, 2}}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderTable(&buf, table)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Criteria  X  Yy   Weighted Score X  Weighted Score Yy", lines[0])
	assert.Equal(t, "A         5  1.5  50                15", lines[2])
	assert.Equal(t, "Bé        5  2    100               40", lines[3])
}

func TestRenderTotals(t *testing.T) {
	scorer, err := scoring.NewScorer(scoring.DefaultCatalog(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	cheap := scoring.NewSupplier("Cheap", 9)
	cheap.Scores[2] = 8
	ev, err := scorer.Evaluate(scoring.ContextCostReduction, []scoring.Supplier{scoring.NewSupplier("Base", 9), cheap})
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderTotals(&buf, ev)
	out := buf.String()
	assert.Contains(t, out, "Total weighted scores (Cost Reduction)")
	assert.Contains(t, out, "Base      600")
	assert.Contains(t, out, "1     Cheap     705")
	assert.Contains(t, out, "2     Base      600")
	assert.Contains(t, out, "Not dominated by another supplier: Cheap")
}

func TestRenderCatalog(t *testing.T) {
	var buf bytes.Buffer
	RenderCatalog(&buf, scoring.DefaultCatalog())
	out := buf.String()
	assert.Contains(t, out, "1. Responsiveness")
	assert.Contains(t, out, "9. Environmental compliance")
	assert.Contains(t, out, "Supply Crisis")
	assert.Contains(t, out, "Sum")
	assert.Contains(t, out, "120")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "日本 ", padRight("日本", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}
