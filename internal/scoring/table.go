package scoring

import "sort"

// DefaultScore is the raw score a supplier starts with on every criterion.
const DefaultScore = 5.0

// Supplier is one column of the matrix: a display name and one raw score per
// criterion. Names are not required to be unique.
type Supplier struct {
	Name   string    `json:"name"`
	Scores []float64 `json:"scores"`
}

// ScoreTable holds raw and weighted scores indexed [criterion][supplier].
type ScoreTable struct {
	Criteria  []string    `json:"criteria"`
	Suppliers []string    `json:"suppliers"`
	Weights   []int       `json:"weights,omitempty"`
	Raw       [][]float64 `json:"raw"`
	Weighted  [][]float64 `json:"weighted"`
}

// SupplierTotal is the sum of one supplier's weighted scores.
type SupplierTotal struct {
	Supplier string  `json:"supplier"`
	Column   int     `json:"column"`
	Total    float64 `json:"total"`
}

// Ranking places a supplier by total. Equal totals share a rank.
type Ranking struct {
	Rank     int     `json:"rank"`
	Supplier string  `json:"supplier"`
	Column   int     `json:"column"`
	Total    float64 `json:"total"`
}

// NewSupplier returns a supplier with every score set to DefaultScore.
func NewSupplier(name string, criteriaCount int) Supplier {
	scores := make([]float64, criteriaCount)
	for i := range scores {
		scores[i] = DefaultScore
	}
	return Supplier{Name: name, Scores: scores}
}

// ComputeWeightedScores multiplies each raw score by its criterion's weight.
// Rows follow the criteria order. Any length mismatch is a configuration
// defect and yields no table at all.
func ComputeWeightedScores(criteria []Criterion, weights []int, suppliers []Supplier) (*ScoreTable, error) {
	if len(weights) != len(criteria) {
		return nil, configErrorf("%d weights for %d criteria", len(weights), len(criteria))
	}
	for _, s := range suppliers {
		if len(s.Scores) != len(criteria) {
			return nil, configErrorf("supplier %q has %d scores for %d criteria", s.Name, len(s.Scores), len(criteria))
		}
	}

	t := &ScoreTable{
		Criteria:  make([]string, len(criteria)),
		Suppliers: make([]string, len(suppliers)),
		Weights:   append([]int(nil), weights...),
		Raw:       make([][]float64, len(criteria)),
		Weighted:  make([][]float64, len(criteria)),
	}
	for s, sup := range suppliers {
		t.Suppliers[s] = sup.Name
	}
	for i, cr := range criteria {
		t.Criteria[i] = cr.Name
		t.Raw[i] = make([]float64, len(suppliers))
		t.Weighted[i] = make([]float64, len(suppliers))
		w := float64(weights[i])
		for s, sup := range suppliers {
			t.Raw[i][s] = sup.Scores[i]
			t.Weighted[i][s] = sup.Scores[i] * w
		}
	}
	return t, nil
}

// ComputeTotals sums every supplier's weighted column in criteria order.
func ComputeTotals(t *ScoreTable) []SupplierTotal {
	totals := make([]SupplierTotal, len(t.Suppliers))
	for s, name := range t.Suppliers {
		totals[s] = SupplierTotal{Supplier: name, Column: s}
	}
	for i := range t.Weighted {
		for s, v := range t.Weighted[i] {
			totals[s].Total += v
		}
	}
	return totals
}

// TotalsByName indexes totals by supplier name. With duplicate names the
// right-most column wins.
func TotalsByName(totals []SupplierTotal) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for _, t := range totals {
		out[t.Supplier] = t.Total
	}
	return out
}

// Rank orders totals from highest to lowest using competition ranking
// (1, 1, 3). Suppliers with equal totals keep their column order.
func Rank(totals []SupplierTotal) []Ranking {
	order := make([]SupplierTotal, len(totals))
	copy(order, totals)

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Total > order[j].Total
	})

	out := make([]Ranking, len(order))
	for i, t := range order {
		rank := i + 1
		if i > 0 && t.Total == order[i-1].Total {
			rank = out[i-1].Rank
		}
		out[i] = Ranking{Rank: rank, Supplier: t.Supplier, Column: t.Column, Total: t.Total}
	}
	return out
}
