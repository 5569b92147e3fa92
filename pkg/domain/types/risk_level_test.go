package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func TestRiskLevel_IsValidForAISystem(t *testing.T) {
	tests := []struct {
		name  string
		level types.RiskLevel
		want  bool
	}{
		{
			name:  "valid minimal",
			level: types.RiskLevelMinimal,
			want:  true,
		},
		{
			name:  "valid limited",
			level: types.RiskLevelLimited,
			want:  true,
		},
		{
			name:  "valid high",
			level: types.RiskLevelHigh,
			want:  true,
		},
		{
			name:  "valid unacceptable",
			level: types.RiskLevelUnacceptable,
			want:  true,
		},
		{
			name:  "activity-scale low is not on AI scale",
			level: types.RiskLevelLow,
			want:  false,
		},
		{
			name:  "activity-scale medium is not on AI scale",
			level: types.RiskLevelMedium,
			want:  false,
		},
		{
			name:  "invalid level",
			level: types.RiskLevel("invalid"),
			want:  false,
		},
		{
			name:  "empty level",
			level: types.RiskLevel(""),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.level.IsValidForAISystem()).Equal(tt.want)
		})
	}
}

func TestRiskLevel_IsValidForActivity(t *testing.T) {
	tests := []struct {
		name  string
		level types.RiskLevel
		want  bool
	}{
		{
			name:  "valid low",
			level: types.RiskLevelLow,
			want:  true,
		},
		{
			name:  "valid medium",
			level: types.RiskLevelMedium,
			want:  true,
		},
		{
			name:  "valid high",
			level: types.RiskLevelHigh,
			want:  true,
		},
		{
			name:  "AI-scale minimal is not on activity scale",
			level: types.RiskLevelMinimal,
			want:  false,
		},
		{
			name:  "AI-scale unacceptable is not on activity scale",
			level: types.RiskLevelUnacceptable,
			want:  false,
		},
		{
			name:  "invalid level",
			level: types.RiskLevel("invalid"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.level.IsValidForActivity()).Equal(tt.want)
		})
	}
}

func TestRiskLevel_Ordinal(t *testing.T) {
	// Ordering within each scale must be strictly ascending
	ai := types.AllAIRiskLevels()
	for i := 1; i < len(ai); i++ {
		gt.B(t, ai[i-1].Ordinal() < ai[i].Ordinal()).True()
	}

	activity := types.AllActivityRiskLevels()
	for i := 1; i < len(activity); i++ {
		gt.B(t, activity[i-1].Ordinal() < activity[i].Ordinal()).True()
	}

	gt.N(t, types.RiskLevel("invalid").Ordinal()).Equal(-1)
}

func TestParseRiskLevel(t *testing.T) {
	level, err := types.ParseRiskLevel("HIGH")
	gt.NoError(t, err)
	gt.V(t, level).Equal(types.RiskLevelHigh)

	level, err = types.ParseRiskLevel("LOW")
	gt.NoError(t, err)
	gt.V(t, level).Equal(types.RiskLevelLow)

	_, err = types.ParseRiskLevel("EXTREME")
	gt.Error(t, err)

	_, err = types.ParseRiskLevel("")
	gt.Error(t, err)
}
