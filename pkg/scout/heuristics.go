package scout

import "strings"

// Baseline every candidate starts from before any rule fires.
const (
	BaselineScore     = 50
	BaselineRationale = "Basic match."
)

// RuleInput is the lowercased view of a candidate that rules match against.
type RuleInput struct {
	Requirement string
	Name        string
	Description string
}

// Rule is one scoring policy entry. Rules are evaluated in declaration
// order; a later rule sees the running score and may override it.
type Rule struct {
	// Name identifies the rule in logs.
	Name string

	// When reports whether the rule applies to the input.
	When func(RuleInput) bool

	// Delta is added to the running score, or replaces it when Absolute
	// is set.
	Delta    int
	Absolute bool

	// Rationale replaces the running rationale, or is appended to it when
	// AppendRationale is set.
	Rationale       string
	AppendRationale bool
}

// DefaultRules is the built-in scoring policy.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "jeecg-affinity",
			When: func(in RuleInput) bool {
				return strings.Contains(in.Requirement, "jeecg") && strings.Contains(in.Name, "jeecg")
			},
			Delta:     30,
			Rationale: "High affinity: Jeecg module pattern detected.",
		},
		{
			Name: "stripe-sdk",
			When: func(in RuleInput) bool {
				return strings.Contains(in.Requirement, "stripe") &&
					strings.Contains(in.Name, "stripe") &&
					strings.Contains(in.Description, "sdk")
			},
			Delta:     40,
			Absolute:  true,
			Rationale: "Low affinity: SDK library (requires wrapping).",
		},
		{
			Name: "stripe-implementation",
			When: func(in RuleInput) bool {
				return strings.Contains(in.Requirement, "stripe") &&
					strings.Contains(in.Name, "stripe") &&
					!strings.Contains(in.Description, "sdk")
			},
			Delta:     40,
			Rationale: "Good match: Payment implementation found.",
		},
		StandaloneRule("system", "module"),
	}
}

// StandaloneRule penalizes candidates whose description suggests a full
// application rather than an embeddable module. The keyword pair is data so
// deployments can tune it without touching the scorer.
func StandaloneRule(flagWord, exemptWord string) Rule {
	return Rule{
		Name: "standalone-penalty",
		When: func(in RuleInput) bool {
			return strings.Contains(in.Description, flagWord) && !strings.Contains(in.Description, exemptWord)
		},
		Delta:           -10,
		Rationale:       " Warning: Standalone system, migration might be complex.",
		AppendRationale: true,
	}
}

// Scorer applies an ordered rule set to candidates. Scoring is pure and
// total: every candidate gets a score and a rationale, with no I/O.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a scorer. A nil rule slice selects DefaultRules.
func NewScorer(rules []Rule) *Scorer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Scorer{rules: rules}
}

// Score evaluates the rule set against a candidate and returns the final
// score and rationale.
func (s *Scorer) Score(c Candidate, requirement string) (int, string) {
	in := RuleInput{
		Requirement: strings.ToLower(requirement),
		Name:        strings.ToLower(c.Name),
		Description: strings.ToLower(c.Description),
	}

	score := BaselineScore
	rationale := BaselineRationale
	for _, r := range s.rules {
		if !r.When(in) {
			continue
		}
		if r.Absolute {
			score = r.Delta
		} else {
			score += r.Delta
		}
		if r.AppendRationale {
			rationale += r.Rationale
		} else {
			rationale = r.Rationale
		}
	}
	return score, rationale
}
