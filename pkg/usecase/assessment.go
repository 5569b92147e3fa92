package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/utils/async"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Classify runs the classification engine without persisting anything.
// This is the stateless API surface; the result is returned as computed.
func (uc *UseCases) Classify(ctx context.Context, input *model.AssessmentInput) (*model.AssessmentResult, error) {
	return uc.classifier.Classify(input)
}

// AssessActivity classifies a register record and persists the outcome as
// an assessment. The narrative draft is best effort; a drafting failure
// never discards the computed result. Notification runs asynchronously.
func (uc *UseCases) AssessActivity(ctx context.Context, activityID int64) (*model.Assessment, error) {
	activity, err := uc.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	assessment, err := uc.assess(ctx, activity)
	if err != nil {
		return nil, err
	}

	return assessment, nil
}

func (uc *UseCases) assess(ctx context.Context, activity *model.Activity) (*model.Assessment, error) {
	input := activity.AssessmentInput()

	result, err := uc.classifier.Classify(input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to classify activity",
			goerr.V(ActivityIDKey, activity.ID))
	}

	assessment := &model.Assessment{
		ActivityID: activity.ID,
		Input:      *input,
		Result:     *result,
	}

	if uc.narrative != nil {
		text, err := uc.narrative.Draft(ctx, activity, assessment)
		if err != nil {
			logging.From(ctx).Warn("narrative draft failed, storing assessment without it",
				"activityID", activity.ID, "error", err.Error())
		} else {
			assessment.Narrative = text
		}
	}

	stored, err := uc.repo.Assessment().Put(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment",
			goerr.V(ActivityIDKey, activity.ID))
	}

	uc.dispatchNotification(ctx, activity, stored)

	return stored, nil
}

// dispatchNotification fires a Slack notice for outcomes that demand
// attention. It never blocks or fails the assessment itself.
func (uc *UseCases) dispatchNotification(ctx context.Context, activity *model.Activity, assessment *model.Assessment) {
	if uc.notify == nil {
		return
	}

	switch assessment.Result.RiskLevel {
	case types.RiskLevelHigh, types.RiskLevelUnacceptable:
	default:
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notify.NotifyAssessment(ctx, activity, assessment)
	})
}

// GetAssessment retrieves a stored assessment by ID
func (uc *UseCases) GetAssessment(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrAssessmentNotFound, AssessmentIDKey, id)
	}
	return assessment, nil
}

// ListAssessments retrieves all stored assessments, newest first
func (uc *UseCases) ListAssessments(ctx context.Context) ([]*model.Assessment, error) {
	assessments, err := uc.repo.Assessment().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return assessments, nil
}

// ListActivityAssessments retrieves assessments for one register record
func (uc *UseCases) ListActivityAssessments(ctx context.Context, activityID int64) ([]*model.Assessment, error) {
	if _, err := uc.GetActivity(ctx, activityID); err != nil {
		return nil, err
	}

	assessments, err := uc.repo.Assessment().ListByActivity(ctx, activityID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activity assessments",
			goerr.V(ActivityIDKey, activityID))
	}
	return assessments, nil
}

// ReassessAll re-runs classification for every register record, storing a
// fresh assessment per record. Evaluations are independent, so they run
// concurrently with a bounded degree.
func (uc *UseCases) ReassessAll(ctx context.Context) (int, error) {
	activities, err := uc.ListActivities(ctx)
	if err != nil {
		return 0, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)

	for _, activity := range activities {
		eg.Go(func() error {
			if _, err := uc.assess(ctx, activity); err != nil {
				return goerr.Wrap(err, "failed to reassess activity",
					goerr.V(ActivityIDKey, activity.ID))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	return len(activities), nil
}
