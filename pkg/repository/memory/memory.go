package memory

import (
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and tests
type Memory struct {
	activity   *activityRepository
	assessment *assessmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		activity:   newActivityRepository(),
		assessment: newAssessmentRepository(),
	}
}

func (m *Memory) Activity() interfaces.ActivityRepository {
	return m.activity
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Close() error {
	return nil
}
