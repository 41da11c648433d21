package scoring

import (
	"reflect"
	"testing"
)

func TestFrontier(t *testing.T) {
	suppliers := []Supplier{
		{Name: "a", Scores: []float64{9, 8, 7}},
		{Name: "b", Scores: []float64{7, 9, 8}},
		{Name: "c", Scores: []float64{5, 5, 5}}, // dominated by a and b
	}

	frontier := Frontier(suppliers)
	if !reflect.DeepEqual(frontier, []int{0, 1}) {
		t.Errorf("expected columns [0 1] on frontier, got %v", frontier)
	}
}

func TestFrontierEqualScoresNotDominated(t *testing.T) {
	// identical columns, e.g. two fresh suppliers at the default score
	suppliers := []Supplier{
		NewSupplier("Supplier A", 9),
		NewSupplier("Supplier A", 9),
	}
	if got := Frontier(suppliers); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("expected both columns on frontier, got %v", got)
	}
}

func TestFrontierSingleAndEmpty(t *testing.T) {
	if got := Frontier([]Supplier{{Name: "only", Scores: []float64{1}}}); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("expected [0], got %v", got)
	}
	if got := Frontier(nil); len(got) != 0 {
		t.Errorf("expected empty frontier, got %v", got)
	}
}

func TestEvaluateIncludesFrontier(t *testing.T) {
	s, err := NewScorer(DefaultCatalog(), discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	better := NewSupplier("Better", 9)
	better.Scores[0] = 6

	ev, err := s.Evaluate(ContextSupplyCrisis, []Supplier{NewSupplier("Base", 9), better})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ev.Frontier, []int{1}) {
		t.Errorf("expected only column 1 on frontier, got %v", ev.Frontier)
	}
}
