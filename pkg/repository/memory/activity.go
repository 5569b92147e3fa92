package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
)

type activityRepository struct {
	mu         sync.RWMutex
	activities map[int64]*model.Activity
	nextID     int64
}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		activities: make(map[int64]*model.Activity),
		nextID:     1,
	}
}

func copyActivity(a *model.Activity) *model.Activity {
	copied := *a
	return &copied
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyActivity(activity)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.activities[created.ID] = created
	return copyActivity(created), nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, exists := r.activities[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}

	return copyActivity(activity), nil
}

func (r *activityRepository) List(ctx context.Context) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]*model.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		activities = append(activities, copyActivity(activity))
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].ID < activities[j].ID
	})

	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.activities[activity.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", activity.ID))
	}

	updated := copyActivity(activity)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.activities[updated.ID] = updated
	return copyActivity(updated), nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.activities[id]; !exists {
		return goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}

	delete(r.activities, id)
	return nil
}
