package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[model.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[model.AssessmentID]*model.Assessment),
	}
}

// copyAssessment returns a copy that does not share slice storage
func copyAssessment(a *model.Assessment) *model.Assessment {
	copied := *a
	if a.Result.TriggeredFactors != nil {
		copied.Result.TriggeredFactors = make([]types.Factor, len(a.Result.TriggeredFactors))
		copy(copied.Result.TriggeredFactors, a.Result.TriggeredFactors)
	}
	if a.Result.RequiredMeasures != nil {
		copied.Result.RequiredMeasures = make([]string, len(a.Result.RequiredMeasures))
		copy(copied.Result.RequiredMeasures, a.Result.RequiredMeasures)
	}
	return &copied
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAssessment(assessment)
	if created.ID == "" {
		created.ID = model.NewAssessmentID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.assessments[created.ID] = created
	return copyAssessment(created), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		assessments = append(assessments, copyAssessment(a))
	}

	sortAssessments(assessments)
	return assessments, nil
}

func (r *assessmentRepository) ListByActivity(ctx context.Context, activityID int64) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.Assessment, 0)
	for _, a := range r.assessments {
		if a.ActivityID != activityID {
			continue
		}
		assessments = append(assessments, copyAssessment(a))
	}

	sortAssessments(assessments)
	return assessments, nil
}

// sortAssessments orders newest first, breaking ties by ID for stability
func sortAssessments(assessments []*model.Assessment) {
	sort.Slice(assessments, func(i, j int) bool {
		if !assessments[i].CreatedAt.Equal(assessments[j].CreatedAt) {
			return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
		}
		return assessments[i].ID < assessments[j].ID
	})
}
