package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type assessmentDocument struct {
	ID         string `firestore:"id"`
	ActivityID int64  `firestore:"activity_id"`

	SubjectKind                      string `firestore:"subject_kind"`
	UsesAutomatedDecisionMaking      bool   `firestore:"uses_automated_decision_making"`
	UsesProfiling                    bool   `firestore:"uses_profiling"`
	InvolvesSpecialCategoryData      bool   `firestore:"involves_special_category_data"`
	IsLargeScale                     bool   `firestore:"is_large_scale"`
	UsesInnovativeTechnology         bool   `firestore:"uses_innovative_technology"`
	AffectedPersonCount              int64  `firestore:"affected_person_count"`
	IsSocialScoringByPublicAuthority bool   `firestore:"is_social_scoring_by_public_authority"`
	HasHumanOversight                bool   `firestore:"has_human_oversight"`

	RiskScore                    float64  `firestore:"risk_score"`
	RiskLevel                    string   `firestore:"risk_level"`
	TriggeredFactors             []string `firestore:"triggered_factors"`
	RequiredMeasures             []string `firestore:"required_measures"`
	AssessmentRequired           bool     `firestore:"assessment_required"`
	CEMarkingRequired            bool     `firestore:"ce_marking_required"`
	ConformityAssessmentRequired bool     `firestore:"conformity_assessment_required"`
	TransparencyRequired         bool     `firestore:"transparency_required"`

	Narrative string    `firestore:"narrative"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	factors := make([]string, len(a.Result.TriggeredFactors))
	for i, f := range a.Result.TriggeredFactors {
		factors[i] = f.String()
	}
	measures := make([]string, len(a.Result.RequiredMeasures))
	copy(measures, a.Result.RequiredMeasures)

	return &assessmentDocument{
		ID:                               a.ID.String(),
		ActivityID:                       a.ActivityID,
		SubjectKind:                      a.Input.SubjectKind.String(),
		UsesAutomatedDecisionMaking:      a.Input.UsesAutomatedDecisionMaking,
		UsesProfiling:                    a.Input.UsesProfiling,
		InvolvesSpecialCategoryData:      a.Input.InvolvesSpecialCategoryData,
		IsLargeScale:                     a.Input.IsLargeScale,
		UsesInnovativeTechnology:         a.Input.UsesInnovativeTechnology,
		AffectedPersonCount:              a.Input.AffectedPersonCount,
		IsSocialScoringByPublicAuthority: a.Input.IsSocialScoringByPublicAuthority,
		HasHumanOversight:                a.Input.HasHumanOversight,
		RiskScore:                        a.Result.RiskScore,
		RiskLevel:                        a.Result.RiskLevel.String(),
		TriggeredFactors:                 factors,
		RequiredMeasures:                 measures,
		AssessmentRequired:               a.Result.AssessmentRequired,
		CEMarkingRequired:                a.Result.CEMarkingRequired,
		ConformityAssessmentRequired:     a.Result.ConformityAssessmentRequired,
		TransparencyRequired:             a.Result.TransparencyRequired,
		Narrative:                        a.Narrative,
		CreatedAt:                        a.CreatedAt,
	}
}

func (d *assessmentDocument) toModel() *model.Assessment {
	factors := make([]types.Factor, len(d.TriggeredFactors))
	for i, f := range d.TriggeredFactors {
		factors[i] = types.Factor(f)
	}
	measures := make([]string, len(d.RequiredMeasures))
	copy(measures, d.RequiredMeasures)

	return &model.Assessment{
		ID:         model.AssessmentID(d.ID),
		ActivityID: d.ActivityID,
		Input: model.AssessmentInput{
			SubjectKind:                      types.SubjectKind(d.SubjectKind),
			UsesAutomatedDecisionMaking:      d.UsesAutomatedDecisionMaking,
			UsesProfiling:                    d.UsesProfiling,
			InvolvesSpecialCategoryData:      d.InvolvesSpecialCategoryData,
			IsLargeScale:                     d.IsLargeScale,
			UsesInnovativeTechnology:         d.UsesInnovativeTechnology,
			AffectedPersonCount:              d.AffectedPersonCount,
			IsSocialScoringByPublicAuthority: d.IsSocialScoringByPublicAuthority,
			HasHumanOversight:                d.HasHumanOversight,
		},
		Result: model.AssessmentResult{
			RiskScore:                    d.RiskScore,
			RiskLevel:                    types.RiskLevel(d.RiskLevel),
			TriggeredFactors:             factors,
			RequiredMeasures:             measures,
			AssessmentRequired:           d.AssessmentRequired,
			CEMarkingRequired:            d.CEMarkingRequired,
			ConformityAssessmentRequired: d.ConformityAssessmentRequired,
			TransparencyRequired:         d.TransparencyRequired,
		},
		Narrative: d.Narrative,
		CreatedAt: d.CreatedAt,
	}
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	doc := toAssessmentDocument(assessment)
	if doc.ID == "" {
		doc.ID = model.NewAssessmentID().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put assessment", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	return collectAssessments(iter)
}

func (r *assessmentRepository) ListByActivity(ctx context.Context, activityID int64) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("activity_id", "==", activityID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	return collectAssessments(iter)
}

func collectAssessments(iter *firestore.DocumentIterator) ([]*model.Assessment, error) {
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}

		assessments = append(assessments, assessmentDoc.toModel())
	}

	return assessments, nil
}
