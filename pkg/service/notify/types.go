package notify

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

// Service posts assessment outcomes to a notification channel. It is only
// invoked for outcomes that demand attention (HIGH, UNACCEPTABLE).
type Service interface {
	NotifyAssessment(ctx context.Context, activity *model.Activity, assessment *model.Assessment) error
}
