package scoring

import (
	"log/slog"
	"math"
)

// Evaluation captures the complete scoring output for one set of suppliers
// under one context.
type Evaluation struct {
	Context string          `json:"context"`
	Table   *ScoreTable     `json:"table"`
	Totals  []SupplierTotal `json:"totals"`
	Ranking []Ranking       `json:"ranking"`

	// Frontier lists the columns of suppliers not dominated on raw scores.
	Frontier []int `json:"frontier"`
}

// Scorer binds a validated catalog to the weighted additive reduction.
// It holds no per-session state and is safe for concurrent use.
type Scorer struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewScorer validates the catalog and returns a Scorer over it.
func NewScorer(catalog Catalog, logger *slog.Logger) (*Scorer, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{catalog: catalog, logger: logger}, nil
}

// Catalog returns the scorer's configuration.
func (s *Scorer) Catalog() Catalog {
	return s.catalog
}

// Contexts returns the selectable context labels in declared order.
func (s *Scorer) Contexts() []string {
	return s.catalog.Contexts()
}

// Criteria returns the ordered criteria.
func (s *Scorer) Criteria() []Criterion {
	return s.catalog.Criteria
}

// Profile resolves a context label to its weight profile.
func (s *Scorer) Profile(context string) (WeightProfile, error) {
	return SelectWeightProfile(s.catalog.Profiles, context)
}

// Evaluate selects the profile for context and computes the weighted table,
// totals and ranking for suppliers.
func (s *Scorer) Evaluate(context string, suppliers []Supplier) (*Evaluation, error) {
	profile, err := s.Profile(context)
	if err != nil {
		return nil, err
	}

	table, err := ComputeWeightedScores(s.catalog.Criteria, profile.Weights, suppliers)
	if err != nil {
		s.logger.Error("weighted score computation failed", "context", context, "error", err)
		return nil, err
	}

	totals := ComputeTotals(table)
	if err := checkFinite(table, totals); err != nil {
		s.logger.Warn("evaluation overflowed", "context", context, "error", err)
		return nil, err
	}
	s.logger.Debug("evaluated suppliers",
		"context", context,
		"suppliers", len(suppliers),
		"criteria", len(table.Criteria),
	)

	return &Evaluation{
		Context:  profile.Context,
		Table:    table,
		Totals:   totals,
		Ranking:  Rank(totals),
		Frontier: Frontier(suppliers),
	}, nil
}

func checkFinite(t *ScoreTable, totals []SupplierTotal) error {
	for c, row := range t.Weighted {
		for sup, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &NonFiniteScoreError{Supplier: t.Suppliers[sup], Column: sup, Criterion: t.Criteria[c]}
			}
		}
	}
	for _, tot := range totals {
		if math.IsNaN(tot.Total) || math.IsInf(tot.Total, 0) {
			return &NonFiniteScoreError{Supplier: tot.Supplier, Column: tot.Column}
		}
	}
	return nil
}
