package scoring

// Frontier returns the columns of suppliers that no other supplier dominates
// on raw scores. A supplier is dominated if another scores >= on every
// criterion and strictly higher on at least one. Weights play no part.
func Frontier(suppliers []Supplier) []int {
	frontier := []int{}
	for i := range suppliers {
		dominated := false
		for j := range suppliers {
			if i == j {
				continue
			}
			if dominates(suppliers[j].Scores, suppliers[i].Scores) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, i)
		}
	}
	return frontier
}

func dominates(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	strict := false
	for k := range a {
		if a[k] < b[k] {
			return false
		}
		if a[k] > b[k] {
			strict = true
		}
	}
	return strict
}
