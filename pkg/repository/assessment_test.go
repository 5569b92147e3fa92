package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/repository/firestore"
	"github.com/secmon-lab/themis/pkg/repository/memory"
)

func sampleAssessment(activityID int64, createdAt time.Time) *model.Assessment {
	return &model.Assessment{
		ActivityID: activityID,
		Input: model.AssessmentInput{
			SubjectKind:                 types.SubjectAISystem,
			UsesAutomatedDecisionMaking: true,
			UsesProfiling:               true,
			HasHumanOversight:           true,
		},
		Result: model.AssessmentResult{
			RiskScore:          0.45,
			RiskLevel:          types.RiskLevelLimited,
			TriggeredFactors:   []types.Factor{types.FactorAutomatedDecisionMaking, types.FactorProfiling},
			RequiredMeasures:   []string{"transparency notice to affected persons"},
			AssessmentRequired: false,
		},
		CreatedAt: createdAt,
	}
}

func runAssessmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put assigns ID and CreatedAt when empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Assessment().Put(ctx, sampleAssessment(1, time.Time{}))
		if err != nil {
			t.Fatalf("failed to put assessment: %v", err)
		}

		if stored.ID == "" {
			t.Error("expected non-empty assessment ID")
		}
		if stored.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
	})

	t.Run("Get retrieves stored assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Assessment().Put(ctx, sampleAssessment(7, time.Time{}))
		if err != nil {
			t.Fatalf("failed to put assessment: %v", err)
		}

		retrieved, err := repo.Assessment().Get(ctx, stored.ID)
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}

		if retrieved.ID != stored.ID {
			t.Errorf("expected ID=%s, got %s", stored.ID, retrieved.ID)
		}
		if retrieved.ActivityID != 7 {
			t.Errorf("expected ActivityID=7, got %d", retrieved.ActivityID)
		}
		if retrieved.Input.SubjectKind != types.SubjectAISystem {
			t.Errorf("expected subject kind AI_SYSTEM, got %s", retrieved.Input.SubjectKind)
		}
		if retrieved.Result.RiskScore != 0.45 {
			t.Errorf("expected risk score 0.45, got %f", retrieved.Result.RiskScore)
		}
		if retrieved.Result.RiskLevel != types.RiskLevelLimited {
			t.Errorf("expected LIMITED, got %s", retrieved.Result.RiskLevel)
		}
		if len(retrieved.Result.TriggeredFactors) != 2 {
			t.Fatalf("expected 2 triggered factors, got %d", len(retrieved.Result.TriggeredFactors))
		}
		if retrieved.Result.TriggeredFactors[0] != types.FactorAutomatedDecisionMaking {
			t.Errorf("unexpected first factor: %s", retrieved.Result.TriggeredFactors[0])
		}
		if len(retrieved.Result.RequiredMeasures) != 1 {
			t.Fatalf("expected 1 required measure, got %d", len(retrieved.Result.RequiredMeasures))
		}
	})

	t.Run("Get returns error for non-existent assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assessment().Get(ctx, model.NewAssessmentID())
		if err == nil {
			t.Error("expected error for non-existent assessment")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List returns assessments newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Truncate(time.Millisecond)
		for i := 0; i < 3; i++ {
			if _, err := repo.Assessment().Put(ctx,
				sampleAssessment(int64(i+1), base.Add(time.Duration(i)*time.Second))); err != nil {
				t.Fatalf("failed to put assessment %d: %v", i, err)
			}
		}

		assessments, err := repo.Assessment().List(ctx)
		if err != nil {
			t.Fatalf("failed to list assessments: %v", err)
		}
		if len(assessments) != 3 {
			t.Fatalf("expected 3 assessments, got %d", len(assessments))
		}
		for i := 1; i < len(assessments); i++ {
			if assessments[i-1].CreatedAt.Before(assessments[i].CreatedAt) {
				t.Errorf("expected newest first, got %v before %v",
					assessments[i-1].CreatedAt, assessments[i].CreatedAt)
			}
		}
	})

	t.Run("ListByActivity filters by activity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Truncate(time.Millisecond)
		for i := 0; i < 2; i++ {
			if _, err := repo.Assessment().Put(ctx,
				sampleAssessment(100, base.Add(time.Duration(i)*time.Second))); err != nil {
				t.Fatalf("failed to put assessment: %v", err)
			}
		}
		if _, err := repo.Assessment().Put(ctx, sampleAssessment(200, base)); err != nil {
			t.Fatalf("failed to put assessment: %v", err)
		}

		assessments, err := repo.Assessment().ListByActivity(ctx, 100)
		if err != nil {
			t.Fatalf("failed to list assessments by activity: %v", err)
		}
		if len(assessments) != 2 {
			t.Fatalf("expected 2 assessments, got %d", len(assessments))
		}
		for _, a := range assessments {
			if a.ActivityID != 100 {
				t.Errorf("expected ActivityID=100, got %d", a.ActivityID)
			}
		}
		if assessments[0].CreatedAt.Before(assessments[1].CreatedAt) {
			t.Error("expected newest first ordering")
		}
	})

	t.Run("Returned assessment is a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Assessment().Put(ctx, sampleAssessment(1, time.Time{}))
		if err != nil {
			t.Fatalf("failed to put assessment: %v", err)
		}

		stored.Result.TriggeredFactors[0] = types.FactorSocialScoring

		retrieved, err := repo.Assessment().Get(ctx, stored.ID)
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if retrieved.Result.TriggeredFactors[0] != types.FactorAutomatedDecisionMaking {
			t.Errorf("expected stored factors to be unchanged, got %s",
				retrieved.Result.TriggeredFactors[0])
		}
	})
}

func TestMemoryAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, newFirestoreRepository)
}
