package types

// Factor identifies a single boolean risk condition evaluated by the
// classification engine. The declared order below is the evaluation order.
type Factor string

const (
	FactorAutomatedDecisionMaking Factor = "automated_decision_making"
	FactorProfiling               Factor = "profiling"
	FactorSpecialCategoryData     Factor = "special_category_data"
	FactorLargeScale              Factor = "large_scale"
	FactorInnovativeTechnology    Factor = "innovative_technology"
	FactorNoHumanOversight        Factor = "no_human_oversight"

	// FactorSocialScoring is the prohibited-practice veto for AI systems.
	// It never contributes a weight; when present it is the sole factor.
	FactorSocialScoring Factor = "social_scoring_public_authority"
)

// String returns the string representation of the factor
func (f Factor) String() string {
	return string(f)
}
