package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// Context keys for error values
const (
	ActivityIDKey   = "activity_id"
	AssessmentIDKey = "assessment_id"
)
