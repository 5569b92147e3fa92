package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// AssessmentID is a unique identifier for an assessment
type AssessmentID string

// NewAssessmentID generates a new random AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

// String returns the string representation of AssessmentID
func (id AssessmentID) String() string {
	return string(id)
}

// AssessmentInput describes the subject being assessed. It is constructed
// per request from caller-supplied fields and never mutated by the engine.
type AssessmentInput struct {
	SubjectKind                      types.SubjectKind `json:"subject_kind"`
	UsesAutomatedDecisionMaking      bool              `json:"uses_automated_decision_making"`
	UsesProfiling                    bool              `json:"uses_profiling"`
	InvolvesSpecialCategoryData      bool              `json:"involves_special_category_data"`
	IsLargeScale                     bool              `json:"is_large_scale"`
	UsesInnovativeTechnology         bool              `json:"uses_innovative_technology"`
	AffectedPersonCount              int64             `json:"affected_person_count"`
	IsSocialScoringByPublicAuthority bool              `json:"is_social_scoring_by_public_authority"`
	HasHumanOversight                bool              `json:"has_human_oversight"`
}

// Validate checks the structural invariants of the input
func (x *AssessmentInput) Validate() error {
	if !x.SubjectKind.IsValid() {
		return goerr.Wrap(types.ErrInvalidInput, "unknown subject kind",
			goerr.V("subject_kind", x.SubjectKind))
	}
	if x.AffectedPersonCount < 0 {
		return goerr.Wrap(types.ErrInvalidInput, "affected person count must not be negative",
			goerr.V("affected_person_count", x.AffectedPersonCount))
	}
	return nil
}

// AssessmentResult is the immutable output of a classification. It is
// produced once per input and never mutated afterwards.
type AssessmentResult struct {
	RiskScore          float64         `json:"risk_score"`
	RiskLevel          types.RiskLevel `json:"risk_level"`
	TriggeredFactors   []types.Factor  `json:"triggered_factors"`
	RequiredMeasures   []string        `json:"required_measures"`
	AssessmentRequired bool            `json:"assessment_required"`

	// AI system obligations, set only on the AI path
	CEMarkingRequired            bool `json:"ce_marking_required,omitempty"`
	ConformityAssessmentRequired bool `json:"conformity_assessment_required,omitempty"`
	TransparencyRequired         bool `json:"transparency_required,omitempty"`
}

// Assessment is a persisted classification outcome. ActivityID is zero for
// ad-hoc classifications that are not tied to a register record.
type Assessment struct {
	ID         AssessmentID     `json:"id"`
	ActivityID int64            `json:"activity_id,omitempty"`
	Input      AssessmentInput  `json:"input"`
	Result     AssessmentResult `json:"result"`

	// Narrative is optional free-form text drafted by an external model.
	// It is stored verbatim and never parsed.
	Narrative string `json:"narrative,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
