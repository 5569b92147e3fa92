package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func TestSubjectKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind types.SubjectKind
		want bool
	}{
		{
			name: "valid data processing activity",
			kind: types.SubjectDataProcessingActivity,
			want: true,
		},
		{
			name: "valid AI system",
			kind: types.SubjectAISystem,
			want: true,
		},
		{
			name: "invalid kind",
			kind: types.SubjectKind("ROBOT"),
			want: false,
		},
		{
			name: "empty kind",
			kind: types.SubjectKind(""),
			want: false,
		},
		{
			name: "lowercase variant is not accepted",
			kind: types.SubjectKind("ai_system"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.kind.IsValid()).Equal(tt.want)
		})
	}
}

func TestParseSubjectKind(t *testing.T) {
	kind, err := types.ParseSubjectKind("AI_SYSTEM")
	gt.NoError(t, err)
	gt.V(t, kind).Equal(types.SubjectAISystem)

	kind, err = types.ParseSubjectKind("DATA_PROCESSING_ACTIVITY")
	gt.NoError(t, err)
	gt.V(t, kind).Equal(types.SubjectDataProcessingActivity)

	_, err = types.ParseSubjectKind("UNKNOWN")
	gt.Error(t, err)
}
