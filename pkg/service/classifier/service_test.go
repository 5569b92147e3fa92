package classifier_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/service/classifier"
)

func newClassifier(t *testing.T) *classifier.Service {
	t.Helper()
	svc, err := classifier.New(nil)
	gt.NoError(t, err)
	return svc
}

func aiInput(mod func(*model.AssessmentInput)) *model.AssessmentInput {
	input := &model.AssessmentInput{
		SubjectKind:       types.SubjectAISystem,
		HasHumanOversight: true,
	}
	if mod != nil {
		mod(input)
	}
	return input
}

func activityInput(mod func(*model.AssessmentInput)) *model.AssessmentInput {
	input := &model.AssessmentInput{
		SubjectKind:       types.SubjectDataProcessingActivity,
		HasHumanOversight: true,
	}
	if mod != nil {
		mod(input)
	}
	return input
}

func TestClassify_AISystemAllFactorsFalse(t *testing.T) {
	svc := newClassifier(t)

	result, err := svc.Classify(aiInput(nil))
	gt.NoError(t, err)

	gt.V(t, result.RiskLevel).Equal(types.RiskLevelMinimal)
	gt.N(t, result.RiskScore).Equal(0.0)
	gt.A(t, result.TriggeredFactors).Length(0)
	gt.B(t, result.AssessmentRequired).False()
	gt.B(t, result.CEMarkingRequired).False()
}

func TestClassify_AISystemLimited(t *testing.T) {
	svc := newClassifier(t)

	// ADM (0.25) + profiling (0.20) = 0.45
	result, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
		x.UsesAutomatedDecisionMaking = true
		x.UsesProfiling = true
	}))
	gt.NoError(t, err)

	gt.N(t, result.RiskScore).Equal(0.45)
	gt.V(t, result.RiskLevel).Equal(types.RiskLevelLimited)
	gt.B(t, result.TransparencyRequired).True()
	gt.B(t, result.CEMarkingRequired).False()
	gt.A(t, result.TriggeredFactors).Equal([]types.Factor{
		types.FactorAutomatedDecisionMaking,
		types.FactorProfiling,
	})
}

func TestClassify_AISystemHighBoundary(t *testing.T) {
	svc := newClassifier(t)

	// special-category (0.30) + large-scale (0.15) + no oversight (0.15) = 0.60
	base := func(x *model.AssessmentInput) {
		x.InvolvesSpecialCategoryData = true
		x.IsLargeScale = true
		x.HasHumanOversight = false
	}

	limited, err := svc.Classify(aiInput(base))
	gt.NoError(t, err)
	gt.N(t, limited.RiskScore).Equal(0.60)
	gt.V(t, limited.RiskLevel).Equal(types.RiskLevelLimited)

	// Adding ADM (0.25) pushes the score to 0.85 → HIGH
	high, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
		base(x)
		x.UsesAutomatedDecisionMaking = true
	}))
	gt.NoError(t, err)
	gt.N(t, high.RiskScore).Equal(0.85)
	gt.V(t, high.RiskLevel).Equal(types.RiskLevelHigh)
	gt.B(t, high.CEMarkingRequired).True()
	gt.B(t, high.ConformityAssessmentRequired).True()
}

func TestClassify_ExactHighThreshold(t *testing.T) {
	svc := newClassifier(t)

	// ADM (0.25) + special-category (0.30) + no oversight (0.15) = 0.70,
	// which classifies as HIGH on the inclusive lower bound.
	result, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
		x.UsesAutomatedDecisionMaking = true
		x.InvolvesSpecialCategoryData = true
		x.HasHumanOversight = false
	}))
	gt.NoError(t, err)

	gt.N(t, result.RiskScore).Equal(0.70)
	gt.V(t, result.RiskLevel).Equal(types.RiskLevelHigh)
}

func TestClassify_SocialScoringVeto(t *testing.T) {
	svc := newClassifier(t)

	result, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
		x.IsSocialScoringByPublicAuthority = true
	}))
	gt.NoError(t, err)

	gt.V(t, result.RiskLevel).Equal(types.RiskLevelUnacceptable)
	gt.N(t, result.RiskScore).Equal(1.0)
	gt.B(t, result.AssessmentRequired).False()
	gt.A(t, result.RequiredMeasures).Equal([]string{
		"system must not be operated",
		"redesign required",
	})
}

func TestClassify_VetoPrecedence(t *testing.T) {
	svc := newClassifier(t)

	// The veto wins regardless of all other field values.
	result, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
		x.IsSocialScoringByPublicAuthority = true
		x.UsesAutomatedDecisionMaking = true
		x.UsesProfiling = true
		x.InvolvesSpecialCategoryData = true
		x.IsLargeScale = true
		x.UsesInnovativeTechnology = true
		x.HasHumanOversight = false
		x.AffectedPersonCount = 5000000
	}))
	gt.NoError(t, err)

	gt.V(t, result.RiskLevel).Equal(types.RiskLevelUnacceptable)
	gt.N(t, result.RiskScore).Equal(1.0)
}

func TestClassify_AllFactorsClampToHigh(t *testing.T) {
	svc := newClassifier(t)

	// All weighted factors sum to 1.15; the score clamps at 1.0 and the
	// level is HIGH. UNACCEPTABLE is reserved for the veto path.
	result, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
		x.UsesAutomatedDecisionMaking = true
		x.UsesProfiling = true
		x.InvolvesSpecialCategoryData = true
		x.IsLargeScale = true
		x.UsesInnovativeTechnology = true
		x.HasHumanOversight = false
	}))
	gt.NoError(t, err)

	gt.N(t, result.RiskScore).Equal(1.0)
	gt.V(t, result.RiskLevel).Equal(types.RiskLevelHigh)
	gt.A(t, result.TriggeredFactors).Length(6)
}

func TestClassify_ActivitySpecialCategoryOverride(t *testing.T) {
	svc := newClassifier(t)

	// Special-category data alone scores 0.30 (LOW side of the assessment
	// threshold) but forces a formal assessment regardless of score.
	result, err := svc.Classify(activityInput(func(x *model.AssessmentInput) {
		x.InvolvesSpecialCategoryData = true
	}))
	gt.NoError(t, err)

	gt.N(t, result.RiskScore).Equal(0.30)
	gt.V(t, result.RiskLevel).Equal(types.RiskLevelMedium)
	gt.B(t, result.AssessmentRequired).True()
}

func TestClassify_ActivityScale(t *testing.T) {
	svc := newClassifier(t)

	tests := []struct {
		name           string
		mod            func(*model.AssessmentInput)
		wantScore      float64
		wantLevel      types.RiskLevel
		wantAssessment bool
	}{
		{
			name:      "all false is LOW",
			mod:       nil,
			wantScore: 0.0,
			wantLevel: types.RiskLevelLow,
		},
		{
			name: "profiling only is LOW",
			mod: func(x *model.AssessmentInput) {
				x.UsesProfiling = true
			},
			wantScore: 0.20,
			wantLevel: types.RiskLevelLow,
		},
		{
			name: "ADM and profiling is MEDIUM",
			mod: func(x *model.AssessmentInput) {
				x.UsesAutomatedDecisionMaking = true
				x.UsesProfiling = true
			},
			wantScore: 0.45,
			wantLevel: types.RiskLevelMedium,
		},
		{
			name: "score at assessment threshold mandates DSFA",
			mod: func(x *model.AssessmentInput) {
				x.UsesAutomatedDecisionMaking = true
				x.UsesProfiling = true
				x.UsesInnovativeTechnology = true
				// Missing oversight does not score on the activity path
				x.HasHumanOversight = false
			},
			wantScore:      0.55,
			wantLevel:      types.RiskLevelMedium,
			wantAssessment: true,
		},
		{
			name: "all GDPR factors is HIGH",
			mod: func(x *model.AssessmentInput) {
				x.UsesAutomatedDecisionMaking = true
				x.UsesProfiling = true
				x.InvolvesSpecialCategoryData = true
				x.IsLargeScale = true
				x.UsesInnovativeTechnology = true
			},
			wantScore:      1.0,
			wantLevel:      types.RiskLevelHigh,
			wantAssessment: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Classify(activityInput(tt.mod))
			gt.NoError(t, err)
			gt.N(t, result.RiskScore).Equal(tt.wantScore)
			gt.V(t, result.RiskLevel).Equal(tt.wantLevel)
			gt.V(t, result.AssessmentRequired).Equal(tt.wantAssessment)
		})
	}
}

func TestClassify_LargeScaleDerivedFromHeadCount(t *testing.T) {
	svc := newClassifier(t)

	result, err := svc.Classify(activityInput(func(x *model.AssessmentInput) {
		x.AffectedPersonCount = 10000
	}))
	gt.NoError(t, err)

	gt.N(t, result.RiskScore).Equal(0.15)
	gt.A(t, result.TriggeredFactors).Equal([]types.Factor{types.FactorLargeScale})

	below, err := svc.Classify(activityInput(func(x *model.AssessmentInput) {
		x.AffectedPersonCount = 9999
	}))
	gt.NoError(t, err)
	gt.N(t, below.RiskScore).Equal(0.0)
}

func TestClassify_Determinism(t *testing.T) {
	svc := newClassifier(t)

	input := aiInput(func(x *model.AssessmentInput) {
		x.UsesProfiling = true
		x.IsLargeScale = true
		x.HasHumanOversight = false
		x.AffectedPersonCount = 123456
	})

	first, err := svc.Classify(input)
	gt.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := svc.Classify(input)
		gt.NoError(t, err)
		gt.V(t, again).Equal(first)
	}
}

func TestClassify_Monotonicity(t *testing.T) {
	svc := newClassifier(t)

	// Enabling any additional factor, holding the others fixed, never
	// decreases the score or the level on the ordinal scale.
	enable := []func(*model.AssessmentInput){
		func(x *model.AssessmentInput) { x.UsesAutomatedDecisionMaking = true },
		func(x *model.AssessmentInput) { x.UsesProfiling = true },
		func(x *model.AssessmentInput) { x.InvolvesSpecialCategoryData = true },
		func(x *model.AssessmentInput) { x.IsLargeScale = true },
		func(x *model.AssessmentInput) { x.UsesInnovativeTechnology = true },
		func(x *model.AssessmentInput) { x.HasHumanOversight = false },
	}

	// Walk all 2^6 base combinations and flip each unset factor on top
	for mask := 0; mask < 1<<len(enable); mask++ {
		base := aiInput(nil)
		for bit, f := range enable {
			if mask&(1<<bit) != 0 {
				f(base)
			}
		}

		baseResult, err := svc.Classify(base)
		gt.NoError(t, err)

		for bit, f := range enable {
			if mask&(1<<bit) != 0 {
				continue
			}
			flipped := *base
			f(&flipped)

			flippedResult, err := svc.Classify(&flipped)
			gt.NoError(t, err)

			if flippedResult.RiskScore < baseResult.RiskScore {
				t.Errorf("score decreased: mask=%b bit=%d %.2f -> %.2f",
					mask, bit, baseResult.RiskScore, flippedResult.RiskScore)
			}
			if flippedResult.RiskLevel.Ordinal() < baseResult.RiskLevel.Ordinal() {
				t.Errorf("level decreased: mask=%b bit=%d %s -> %s",
					mask, bit, baseResult.RiskLevel, flippedResult.RiskLevel)
			}
		}
	}
}

func TestClassify_InvalidInput(t *testing.T) {
	svc := newClassifier(t)

	t.Run("negative person count", func(t *testing.T) {
		_, err := svc.Classify(aiInput(func(x *model.AssessmentInput) {
			x.AffectedPersonCount = -1
		}))
		gt.Error(t, err)
		gt.B(t, errors.Is(err, types.ErrInvalidInput)).True()
	})

	t.Run("unknown subject kind", func(t *testing.T) {
		_, err := svc.Classify(&model.AssessmentInput{
			SubjectKind: types.SubjectKind("ROBOT"),
		})
		gt.Error(t, err)
		gt.B(t, errors.Is(err, types.ErrInvalidInput)).True()
	})

	t.Run("nil input", func(t *testing.T) {
		_, err := svc.Classify(nil)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, types.ErrInvalidInput)).True()
	})
}

func TestNew_PolicyValidation(t *testing.T) {
	t.Run("nil policy uses defaults", func(t *testing.T) {
		svc, err := classifier.New(nil)
		gt.NoError(t, err)
		gt.V(t, svc.Policy().Thresholds.High).Equal(0.70)
	})

	t.Run("out-of-range weight rejected", func(t *testing.T) {
		policy := model.DefaultPolicy()
		policy.Weights.Profiling = 1.5
		_, err := classifier.New(policy)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, types.ErrInvalidPolicy)).True()
	})

	t.Run("inverted thresholds rejected", func(t *testing.T) {
		policy := model.DefaultPolicy()
		policy.Thresholds.Limited = 0.9
		_, err := classifier.New(policy)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, types.ErrInvalidPolicy)).True()
	})
}
