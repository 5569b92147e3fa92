package usecase

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// ExportRecord is one line of the JSONL export stream. Exactly one of
// Activity and Assessment is set.
type ExportRecord struct {
	Activity   *model.Activity   `json:"activity,omitempty"`
	Assessment *model.Assessment `json:"assessment,omitempty"`
}

// Export writes the full register and all assessments to w as JSONL:
// activities first in ID order, then assessments newest first. The two
// listings are fetched concurrently; writing is sequential.
func (uc *UseCases) Export(ctx context.Context, w io.Writer) error {
	var activities []*model.Activity
	var assessments []*model.Assessment

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		activities, err = uc.ListActivities(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		assessments, err = uc.ListAssessments(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "failed to fetch export data")
	}

	enc := json.NewEncoder(w)
	for _, activity := range activities {
		if err := enc.Encode(&ExportRecord{Activity: activity}); err != nil {
			return goerr.Wrap(err, "failed to encode activity",
				goerr.V(ActivityIDKey, activity.ID))
		}
	}
	for _, assessment := range assessments {
		if err := enc.Encode(&ExportRecord{Assessment: assessment}); err != nil {
			return goerr.Wrap(err, "failed to encode assessment",
				goerr.V(AssessmentIDKey, assessment.ID))
		}
	}

	return nil
}
