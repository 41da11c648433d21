package scoring

// WeightProfile maps a strategic context to one integer weight per criterion,
// aligned positionally with the catalog's criteria.
type WeightProfile struct {
	Context string `json:"context" yaml:"context"`
	Weights []int  `json:"weights" yaml:"weights"`
}

// Sum returns the total of all weights.
func (p WeightProfile) Sum() int {
	var total int
	for _, w := range p.Weights {
		total += w
	}
	return total
}

// Validate checks that the profile is named and carries exactly one weight per
// criterion.
func (p WeightProfile) Validate(criteriaCount int) error {
	if p.Context == "" {
		return configErrorf("weight profile with empty context")
	}
	if len(p.Weights) != criteriaCount {
		return configErrorf("profile %q has %d weights for %d criteria", p.Context, len(p.Weights), criteriaCount)
	}
	return nil
}

// SelectWeightProfile returns the profile configured for context.
func SelectWeightProfile(profiles []WeightProfile, context string) (WeightProfile, error) {
	for _, p := range profiles {
		if p.Context == context {
			return WeightProfile{Context: p.Context, Weights: append([]int(nil), p.Weights...)}, nil
		}
	}
	known := make([]string, 0, len(profiles))
	for _, p := range profiles {
		known = append(known, p.Context)
	}
	return WeightProfile{}, &UnknownContextError{Context: context, Known: known}
}
