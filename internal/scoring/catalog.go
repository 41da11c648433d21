package scoring

// Context labels of the default weight profiles.
const (
	ContextSupplyCrisis  = "Supply Crisis"
	ContextCostReduction = "Cost Reduction"
)

// GuidanceBand explains what a range of scores means for one criterion.
type GuidanceBand struct {
	Range string `json:"range" yaml:"range"`
	Text  string `json:"text" yaml:"text"`
}

// Criterion is one named axis of supplier evaluation.
type Criterion struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Guidance    []GuidanceBand `json:"guidance,omitempty" yaml:"guidance,omitempty"`
}

// Catalog is the static scoring configuration: an ordered criteria list and
// the weight profiles aligned to it.
type Catalog struct {
	Criteria []Criterion     `json:"criteria" yaml:"criteria"`
	Profiles []WeightProfile `json:"profiles" yaml:"profiles"`
}

// DefaultCatalog returns the canonical nine-criterion configuration.
func DefaultCatalog() Catalog {
	return Catalog{
		Criteria: []Criterion{
			{
				Name:        "Responsiveness",
				Description: "Speed and quality of the supplier's answers to requests, changes and incidents.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Replies take days; escalations are needed to get answers."},
					{Range: "4-6", Text: "Replies within a couple of working days; occasional follow-up needed."},
					{Range: "7-10", Text: "Same-day replies and proactive notice of issues."},
				},
			},
			{
				Name:        "Industrial capacity",
				Description: "Ability to absorb our volumes, including peaks, without degrading lead times.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Already saturated; our volume would be a large share of output."},
					{Range: "4-6", Text: "Can cover nominal volume but peaks are at risk."},
					{Range: "7-10", Text: "Spare capacity on several lines or sites."},
				},
			},
			{
				Name:        "Total cost",
				Description: "Landed cost including unit price, tooling, freight and duties.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Clearly above market after all cost elements."},
					{Range: "4-6", Text: "In line with market."},
					{Range: "7-10", Text: "Clearly below market with a stable price structure."},
				},
			},
			{
				Name:        "Raw material sensitivity",
				Description: "Exposure of price and availability to volatile raw materials.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Single volatile commodity with no hedging or indexing."},
					{Range: "4-6", Text: "Partial exposure, some indexing in place."},
					{Range: "7-10", Text: "Diversified inputs or contractual protection."},
				},
			},
			{
				Name:        "Transit time",
				Description: "Door-to-door delivery time to our receiving sites.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Several weeks, sea freight only."},
					{Range: "4-6", Text: "One to two weeks."},
					{Range: "7-10", Text: "A few days, regional supply."},
				},
			},
			{
				Name:        "Supply continuity risk",
				Description: "Resilience against disruption: second sources, geography, financial health.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Single site in an exposed region or fragile finances."},
					{Range: "4-6", Text: "Some contingency but untested."},
					{Range: "7-10", Text: "Documented business continuity plan with alternate sites."},
				},
			},
			{
				Name:        "Reliability",
				Description: "On-time, in-full delivery and quality record.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Frequent late or non-conforming deliveries."},
					{Range: "4-6", Text: "Occasional misses, corrected when raised."},
					{Range: "7-10", Text: "Consistently on time and in specification."},
				},
			},
			{
				Name:        "Contractual stability",
				Description: "Strength and duration of the contractual framework.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "Spot purchases, no framework agreement."},
					{Range: "4-6", Text: "Annual agreement with limited commitments."},
					{Range: "7-10", Text: "Multi-year agreement with price and volume clauses."},
				},
			},
			{
				Name:        "Environmental compliance",
				Description: "Certifications, reporting and regulatory conformity on environmental matters.",
				Guidance: []GuidanceBand{
					{Range: "1-3", Text: "No certification, no reporting."},
					{Range: "4-6", Text: "Regulatory minimum met, certification in progress."},
					{Range: "7-10", Text: "Certified and publishes measurable targets."},
				},
			},
		},
		Profiles: []WeightProfile{
			{Context: ContextSupplyCrisis, Weights: []int{15, 30, 10, 10, 5, 20, 15, 10, 5}},
			{Context: ContextCostReduction, Weights: []int{10, 15, 35, 15, 10, 10, 5, 5, 5}},
		},
	}
}

// Validate checks the catalog's integrity: non-empty unique criterion names,
// at least one profile, unique contexts and one weight per criterion in every
// profile.
func (c Catalog) Validate() error {
	if len(c.Criteria) == 0 {
		return configErrorf("no criteria configured")
	}
	seen := make(map[string]bool, len(c.Criteria))
	for i, cr := range c.Criteria {
		if cr.Name == "" {
			return configErrorf("criterion %d has no name", i)
		}
		if seen[cr.Name] {
			return configErrorf("duplicate criterion %q", cr.Name)
		}
		seen[cr.Name] = true
	}

	if len(c.Profiles) == 0 {
		return configErrorf("no weight profiles configured")
	}
	contexts := make(map[string]bool, len(c.Profiles))
	for _, p := range c.Profiles {
		if err := p.Validate(len(c.Criteria)); err != nil {
			return err
		}
		if contexts[p.Context] {
			return configErrorf("duplicate context %q", p.Context)
		}
		contexts[p.Context] = true
	}
	return nil
}

// CriterionNames returns the criteria names in declared order.
func (c Catalog) CriterionNames() []string {
	names := make([]string, len(c.Criteria))
	for i, cr := range c.Criteria {
		names[i] = cr.Name
	}
	return names
}

// Contexts returns the configured context labels in declared order.
func (c Catalog) Contexts() []string {
	out := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		out[i] = p.Context
	}
	return out
}
