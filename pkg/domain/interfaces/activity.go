package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

type ActivityRepository interface {
	// Create creates a new activity with auto-generated ID
	Create(ctx context.Context, activity *model.Activity) (*model.Activity, error)

	// Get retrieves an activity by ID
	Get(ctx context.Context, id int64) (*model.Activity, error)

	// List retrieves all activities
	List(ctx context.Context) ([]*model.Activity, error)

	// Update updates an existing activity
	Update(ctx context.Context, activity *model.Activity) (*model.Activity, error)

	// Delete deletes an activity by ID
	Delete(ctx context.Context, id int64) error
}
