package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Weights holds the score contribution of each boolean risk factor.
// The default values are illustrative constants, not validated legal
// guidance; they are tunable through the policy file.
type Weights struct {
	AutomatedDecisionMaking float64
	Profiling               float64
	SpecialCategoryData     float64
	LargeScale              float64
	InnovativeTechnology    float64
	NoHumanOversight        float64
}

// Thresholds holds the score cut points for mapping to categorical levels.
// High and Limited apply to both scales (Limited doubles as the MEDIUM cut
// point on the activity scale); Assessment is the DSFA mandate threshold.
type Thresholds struct {
	High       float64
	Limited    float64
	Assessment float64
}

// MeasureKey addresses one entry of the remediation measure catalog
type MeasureKey struct {
	Kind  types.SubjectKind
	Level types.RiskLevel
}

// Policy is the full configuration of the classification engine. It is
// passed explicitly at construction so tests can substitute it.
type Policy struct {
	Weights    Weights
	Thresholds Thresholds

	// LargeScaleThreshold is the head count at which an activity is treated
	// as large-scale even when the caller did not set the flag.
	LargeScaleThreshold int64

	Measures map[MeasureKey][]string
}

// DefaultPolicy returns the built-in weights, thresholds and measure catalog
func DefaultPolicy() *Policy {
	return &Policy{
		Weights: Weights{
			AutomatedDecisionMaking: 0.25,
			Profiling:               0.20,
			SpecialCategoryData:     0.30,
			LargeScale:              0.15,
			InnovativeTechnology:    0.10,
			NoHumanOversight:        0.15,
		},
		Thresholds: Thresholds{
			High:       0.70,
			Limited:    0.30,
			Assessment: 0.50,
		},
		LargeScaleThreshold: 10000,
		Measures: map[MeasureKey][]string{
			{Kind: types.SubjectAISystem, Level: types.RiskLevelMinimal}: {
				"voluntary code of conduct",
			},
			{Kind: types.SubjectAISystem, Level: types.RiskLevelLimited}: {
				"transparency notice to affected persons",
				"document model capabilities and limitations",
			},
			{Kind: types.SubjectAISystem, Level: types.RiskLevelHigh}: {
				"establish risk management system",
				"technical documentation and event logging",
				"conformity assessment before placing on market",
				"affix CE marking",
				"ensure effective human oversight",
				"post-market monitoring",
			},
			{Kind: types.SubjectAISystem, Level: types.RiskLevelUnacceptable}: {
				"system must not be operated",
				"redesign required",
			},
			{Kind: types.SubjectDataProcessingActivity, Level: types.RiskLevelLow}: {
				"maintain record of processing activities",
			},
			{Kind: types.SubjectDataProcessingActivity, Level: types.RiskLevelMedium}: {
				"maintain record of processing activities",
				"review technical and organizational measures",
			},
			{Kind: types.SubjectDataProcessingActivity, Level: types.RiskLevelHigh}: {
				"conduct data protection impact assessment",
				"implement mitigations before processing starts",
				"consult supervisory authority if residual risk remains high",
			},
		},
	}
}

// Validate checks that the policy is internally consistent
func (p *Policy) Validate() error {
	for name, w := range map[string]float64{
		"automated_decision_making": p.Weights.AutomatedDecisionMaking,
		"profiling":                 p.Weights.Profiling,
		"special_category_data":     p.Weights.SpecialCategoryData,
		"large_scale":               p.Weights.LargeScale,
		"innovative_technology":     p.Weights.InnovativeTechnology,
		"no_human_oversight":        p.Weights.NoHumanOversight,
	} {
		if w < 0 || w > 1 {
			return goerr.Wrap(types.ErrInvalidPolicy, "factor weight must be in [0, 1]",
				goerr.V("factor", name), goerr.V("weight", w))
		}
	}

	if p.Thresholds.High <= 0 || p.Thresholds.High > 1 {
		return goerr.Wrap(types.ErrInvalidPolicy, "high threshold must be in (0, 1]",
			goerr.V("high", p.Thresholds.High))
	}
	if p.Thresholds.Limited <= 0 || p.Thresholds.Limited >= p.Thresholds.High {
		return goerr.Wrap(types.ErrInvalidPolicy, "limited threshold must be in (0, high)",
			goerr.V("limited", p.Thresholds.Limited), goerr.V("high", p.Thresholds.High))
	}
	if p.Thresholds.Assessment <= 0 || p.Thresholds.Assessment > 1 {
		return goerr.Wrap(types.ErrInvalidPolicy, "assessment threshold must be in (0, 1]",
			goerr.V("assessment", p.Thresholds.Assessment))
	}
	if p.LargeScaleThreshold <= 0 {
		return goerr.Wrap(types.ErrInvalidPolicy, "large scale threshold must be positive",
			goerr.V("large_scale_threshold", p.LargeScaleThreshold))
	}
	return nil
}

// MeasuresFor returns the remediation measures for a subject kind and risk
// level. The returned slice is a copy.
func (p *Policy) MeasuresFor(kind types.SubjectKind, level types.RiskLevel) []string {
	measures, ok := p.Measures[MeasureKey{Kind: kind, Level: level}]
	if !ok {
		return []string{}
	}
	out := make([]string, len(measures))
	copy(out, measures)
	return out
}
