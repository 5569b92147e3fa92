package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type activityDocument struct {
	ID          int64  `firestore:"id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
	Controller  string `firestore:"controller"`
	Purpose     string `firestore:"purpose"`
	LegalBasis  string `firestore:"legal_basis"`

	SubjectKind                      string `firestore:"subject_kind"`
	UsesAutomatedDecisionMaking      bool   `firestore:"uses_automated_decision_making"`
	UsesProfiling                    bool   `firestore:"uses_profiling"`
	InvolvesSpecialCategoryData      bool   `firestore:"involves_special_category_data"`
	IsLargeScale                     bool   `firestore:"is_large_scale"`
	UsesInnovativeTechnology         bool   `firestore:"uses_innovative_technology"`
	AffectedPersonCount              int64  `firestore:"affected_person_count"`
	IsSocialScoringByPublicAuthority bool   `firestore:"is_social_scoring_by_public_authority"`
	HasHumanOversight                bool   `firestore:"has_human_oversight"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toActivityDocument(a *model.Activity) *activityDocument {
	return &activityDocument{
		ID:                               a.ID,
		Name:                             a.Name,
		Description:                      a.Description,
		Controller:                       a.Controller,
		Purpose:                          a.Purpose,
		LegalBasis:                       a.LegalBasis,
		SubjectKind:                      a.SubjectKind.String(),
		UsesAutomatedDecisionMaking:      a.UsesAutomatedDecisionMaking,
		UsesProfiling:                    a.UsesProfiling,
		InvolvesSpecialCategoryData:      a.InvolvesSpecialCategoryData,
		IsLargeScale:                     a.IsLargeScale,
		UsesInnovativeTechnology:         a.UsesInnovativeTechnology,
		AffectedPersonCount:              a.AffectedPersonCount,
		IsSocialScoringByPublicAuthority: a.IsSocialScoringByPublicAuthority,
		HasHumanOversight:                a.HasHumanOversight,
		CreatedAt:                        a.CreatedAt,
		UpdatedAt:                        a.UpdatedAt,
	}
}

func (d *activityDocument) toModel() *model.Activity {
	return &model.Activity{
		ID:                               d.ID,
		Name:                             d.Name,
		Description:                      d.Description,
		Controller:                       d.Controller,
		Purpose:                          d.Purpose,
		LegalBasis:                       d.LegalBasis,
		SubjectKind:                      types.SubjectKind(d.SubjectKind),
		UsesAutomatedDecisionMaking:      d.UsesAutomatedDecisionMaking,
		UsesProfiling:                    d.UsesProfiling,
		InvolvesSpecialCategoryData:      d.InvolvesSpecialCategoryData,
		IsLargeScale:                     d.IsLargeScale,
		UsesInnovativeTechnology:         d.UsesInnovativeTechnology,
		AffectedPersonCount:              d.AffectedPersonCount,
		IsSocialScoringByPublicAuthority: d.IsSocialScoringByPublicAuthority,
		HasHumanOversight:                d.HasHumanOversight,
		CreatedAt:                        d.CreatedAt,
		UpdatedAt:                        d.UpdatedAt,
	}
}

type activityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *activityRepository) activitiesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_activities"
	}
	return "activities"
}

func (r *activityRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *activityRepository) activityCounterDoc() string {
	return "activity_counter"
}

func (r *activityRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.activityCounterDoc())

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toActivityDocument(activity)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.activitiesCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create activity")
	}

	return doc.toModel(), nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*model.Activity, error) {
	docRef := r.client.Collection(r.activitiesCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get activity", goerr.V("id", id))
	}

	var activityDoc activityDocument
	if err := doc.DataTo(&activityDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal activity", goerr.V("id", id))
	}

	return activityDoc.toModel(), nil
}

func (r *activityRepository) List(ctx context.Context) ([]*model.Activity, error) {
	iter := r.client.Collection(r.activitiesCollection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var activities []*model.Activity
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate activities")
		}

		var activityDoc activityDocument
		if err := doc.DataTo(&activityDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal activity")
		}

		activities = append(activities, activityDoc.toModel())
	}

	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	docRef := r.client.Collection(r.activitiesCollection()).Doc(fmt.Sprintf("%d", activity.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", activity.ID))
		}
		return nil, goerr.Wrap(err, "failed to get activity", goerr.V("id", activity.ID))
	}

	var existing activityDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal activity", goerr.V("id", activity.ID))
	}

	updated := toActivityDocument(activity)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update activity", goerr.V("id", activity.ID))
	}

	return updated.toModel(), nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.activitiesCollection()).Doc(fmt.Sprintf("%d", id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get activity", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete activity", goerr.V("id", id))
	}

	return nil
}
