package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/repository/firestore"
	"github.com/secmon-lab/themis/pkg/repository/memory"
)

func mapNotFound(err error, sentinel error, key string, value any) error {
	if errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound) {
		return goerr.Wrap(sentinel, sentinel.Error(), goerr.V(key, value))
	}
	return err
}

// CreateActivity validates and stores a new register record
func (uc *UseCases) CreateActivity(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Activity().Create(ctx, activity)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create activity")
	}
	return created, nil
}

// GetActivity retrieves a register record by ID
func (uc *UseCases) GetActivity(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := uc.repo.Activity().Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrActivityNotFound, ActivityIDKey, id)
	}
	return activity, nil
}

// ListActivities retrieves all register records
func (uc *UseCases) ListActivities(ctx context.Context) ([]*model.Activity, error) {
	activities, err := uc.repo.Activity().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities")
	}
	return activities, nil
}

// UpdateActivity validates and stores changes to a register record
func (uc *UseCases) UpdateActivity(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Activity().Update(ctx, activity)
	if err != nil {
		return nil, mapNotFound(err, ErrActivityNotFound, ActivityIDKey, activity.ID)
	}
	return updated, nil
}

// DeleteActivity removes a register record. Past assessments are kept as
// audit records.
func (uc *UseCases) DeleteActivity(ctx context.Context, id int64) error {
	if err := uc.repo.Activity().Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrActivityNotFound, ActivityIDKey, id)
	}
	return nil
}
