package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Activity is a register record (GDPR Art. 30): a data-processing activity
// or an AI system together with the risk attributes used for classification.
type Activity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Controller  string `json:"controller,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	LegalBasis  string `json:"legal_basis,omitempty"`

	SubjectKind                      types.SubjectKind `json:"subject_kind"`
	UsesAutomatedDecisionMaking      bool              `json:"uses_automated_decision_making"`
	UsesProfiling                    bool              `json:"uses_profiling"`
	InvolvesSpecialCategoryData      bool              `json:"involves_special_category_data"`
	IsLargeScale                     bool              `json:"is_large_scale"`
	UsesInnovativeTechnology         bool              `json:"uses_innovative_technology"`
	AffectedPersonCount              int64             `json:"affected_person_count"`
	IsSocialScoringByPublicAuthority bool              `json:"is_social_scoring_by_public_authority"`
	HasHumanOversight                bool              `json:"has_human_oversight"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the register record invariants
func (a *Activity) Validate() error {
	if a.Name == "" {
		return goerr.New("activity name is required")
	}
	input := a.AssessmentInput()
	if err := input.Validate(); err != nil {
		return err
	}
	return nil
}

// AssessmentInput builds the classification input from the stored attributes
func (a *Activity) AssessmentInput() *AssessmentInput {
	return &AssessmentInput{
		SubjectKind:                      a.SubjectKind,
		UsesAutomatedDecisionMaking:      a.UsesAutomatedDecisionMaking,
		UsesProfiling:                    a.UsesProfiling,
		InvolvesSpecialCategoryData:      a.InvolvesSpecialCategoryData,
		IsLargeScale:                     a.IsLargeScale,
		UsesInnovativeTechnology:         a.UsesInnovativeTechnology,
		AffectedPersonCount:              a.AffectedPersonCount,
		IsSocialScoringByPublicAuthority: a.IsSocialScoringByPublicAuthority,
		HasHumanOversight:                a.HasHumanOversight,
	}
}
