package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

type AssessmentRepository interface {
	// Put stores an assessment. The assessment is immutable once written.
	Put(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)

	// List retrieves all assessments, newest first
	List(ctx context.Context) ([]*model.Assessment, error)

	// ListByActivity retrieves assessments for an activity, newest first
	ListByActivity(ctx context.Context, activityID int64) ([]*model.Assessment, error)
}
