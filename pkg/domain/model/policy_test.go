package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func TestDefaultPolicy_Validate(t *testing.T) {
	gt.NoError(t, model.DefaultPolicy().Validate())
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *model.Policy)
	}{
		{
			name: "negative weight",
			modify: func(p *model.Policy) {
				p.Weights.Profiling = -0.1
			},
		},
		{
			name: "weight above one",
			modify: func(p *model.Policy) {
				p.Weights.SpecialCategoryData = 1.5
			},
		},
		{
			name: "zero high threshold",
			modify: func(p *model.Policy) {
				p.Thresholds.High = 0
			},
		},
		{
			name: "limited threshold above high",
			modify: func(p *model.Policy) {
				p.Thresholds.Limited = 0.9
			},
		},
		{
			name: "zero assessment threshold",
			modify: func(p *model.Policy) {
				p.Thresholds.Assessment = 0
			},
		},
		{
			name: "non-positive large scale threshold",
			modify: func(p *model.Policy) {
				p.LargeScaleThreshold = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := model.DefaultPolicy()
			tt.modify(policy)
			err := policy.Validate()
			gt.Error(t, err)
			gt.B(t, errors.Is(err, types.ErrInvalidPolicy)).True()
		})
	}
}

func TestPolicy_MeasuresFor(t *testing.T) {
	policy := model.DefaultPolicy()

	measures := policy.MeasuresFor(types.SubjectAISystem, types.RiskLevelUnacceptable)
	gt.A(t, measures).Length(2)
	gt.V(t, measures[0]).Equal("system must not be operated")

	// mutation of the returned slice must not leak into the policy
	measures[0] = "mutated"
	again := policy.MeasuresFor(types.SubjectAISystem, types.RiskLevelUnacceptable)
	gt.V(t, again[0]).Equal("system must not be operated")

	// entries with no catalog match return an empty slice, not nil
	unknown := policy.MeasuresFor(types.SubjectDataProcessingActivity, types.RiskLevelUnacceptable)
	gt.A(t, unknown).Length(0)
}
