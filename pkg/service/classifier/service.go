package classifier

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Service maps assessment inputs to categorical risk outcomes by evaluating
// an ordered set of boolean factors against the configured policy.
//
// Classify is a pure function of its input: no hidden state, no I/O, and the
// same input always yields the same output. A Service is safe for concurrent
// use; the policy is never mutated after construction.
type Service struct {
	policy *model.Policy
}

// New creates a classifier with the given policy. A nil policy selects the
// built-in defaults. The policy is validated once here so Classify never
// has to.
func New(policy *model.Policy) (*Service, error) {
	if policy == nil {
		policy = model.DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "classifier policy rejected")
	}
	return &Service{policy: policy}, nil
}

// Policy returns the active policy
func (x *Service) Policy() *model.Policy {
	return x.policy
}

// Classify evaluates the input and produces an immutable result.
// It fails with types.ErrInvalidInput when the input violates its
// structural invariants.
func (x *Service) Classify(input *model.AssessmentInput) (*model.AssessmentResult, error) {
	if input == nil {
		return nil, goerr.Wrap(types.ErrInvalidInput, "input is nil")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	switch input.SubjectKind {
	case types.SubjectAISystem:
		return x.classifyAISystem(input), nil
	case types.SubjectDataProcessingActivity:
		return x.classifyActivity(input), nil
	default:
		// Validate already rejects this; kept for exhaustiveness.
		return nil, goerr.Wrap(types.ErrInvalidInput, "unknown subject kind",
			goerr.V("subject_kind", input.SubjectKind))
	}
}

func (x *Service) classifyAISystem(input *model.AssessmentInput) *model.AssessmentResult {
	// Prohibited practice is a hard veto, not a weighted score. No further
	// factors are evaluated and no assessment is mandated: the practice is
	// banned outright, not merely assessed.
	if input.IsSocialScoringByPublicAuthority {
		return &model.AssessmentResult{
			RiskScore:          1.0,
			RiskLevel:          types.RiskLevelUnacceptable,
			TriggeredFactors:   []types.Factor{types.FactorSocialScoring},
			RequiredMeasures:   x.policy.MeasuresFor(types.SubjectAISystem, types.RiskLevelUnacceptable),
			AssessmentRequired: false,
		}
	}

	score, factors := x.accumulate(input, true)

	result := &model.AssessmentResult{
		RiskScore:        score,
		TriggeredFactors: factors,
	}

	switch {
	case score >= x.policy.Thresholds.High:
		result.RiskLevel = types.RiskLevelHigh
		result.CEMarkingRequired = true
		result.ConformityAssessmentRequired = true
		result.AssessmentRequired = true
	case score >= x.policy.Thresholds.Limited:
		result.RiskLevel = types.RiskLevelLimited
		result.TransparencyRequired = true
	default:
		result.RiskLevel = types.RiskLevelMinimal
	}

	result.RequiredMeasures = x.policy.MeasuresFor(types.SubjectAISystem, result.RiskLevel)
	return result
}

func (x *Service) classifyActivity(input *model.AssessmentInput) *model.AssessmentResult {
	score, factors := x.accumulate(input, false)

	result := &model.AssessmentResult{
		RiskScore:        score,
		TriggeredFactors: factors,
	}

	switch {
	case score >= x.policy.Thresholds.High:
		result.RiskLevel = types.RiskLevelHigh
	case score >= x.policy.Thresholds.Limited:
		result.RiskLevel = types.RiskLevelMedium
	default:
		result.RiskLevel = types.RiskLevelLow
	}

	// Special-category data always forces a formal assessment, independent
	// of the aggregate score. This is a legal hard rule, not a weighted one.
	result.AssessmentRequired = score >= x.policy.Thresholds.Assessment ||
		input.InvolvesSpecialCategoryData

	result.RequiredMeasures = x.policy.MeasuresFor(types.SubjectDataProcessingActivity, result.RiskLevel)
	return result
}

// accumulate sums the weights of triggered factors in the fixed evaluation
// order and returns the clamped score together with the factor names.
// The human-oversight factor applies only on the AI path.
func (x *Service) accumulate(input *model.AssessmentInput, aiSystem bool) (float64, []types.Factor) {
	w := x.policy.Weights
	score := 0.0
	factors := []types.Factor{}

	largeScale := input.IsLargeScale ||
		input.AffectedPersonCount >= x.policy.LargeScaleThreshold

	steps := []struct {
		factor    types.Factor
		triggered bool
		weight    float64
	}{
		{types.FactorAutomatedDecisionMaking, input.UsesAutomatedDecisionMaking, w.AutomatedDecisionMaking},
		{types.FactorProfiling, input.UsesProfiling, w.Profiling},
		{types.FactorSpecialCategoryData, input.InvolvesSpecialCategoryData, w.SpecialCategoryData},
		{types.FactorLargeScale, largeScale, w.LargeScale},
		{types.FactorInnovativeTechnology, input.UsesInnovativeTechnology, w.InnovativeTechnology},
		{types.FactorNoHumanOversight, aiSystem && !input.HasHumanOversight, w.NoHumanOversight},
	}

	for _, step := range steps {
		if step.triggered {
			score += step.weight
			factors = append(factors, step.factor)
		}
	}

	// Round to two decimals so threshold comparisons are stable across
	// accumulation order and the score is reproducible in audit records.
	score = math.Round(score*100) / 100

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}

	return score, factors
}
