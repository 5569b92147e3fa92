package types

import "fmt"

// SubjectKind represents what kind of subject is being assessed
type SubjectKind string

const (
	SubjectDataProcessingActivity SubjectKind = "DATA_PROCESSING_ACTIVITY"
	SubjectAISystem               SubjectKind = "AI_SYSTEM"
)

// AllSubjectKinds returns all valid subject kinds
func AllSubjectKinds() []SubjectKind {
	return []SubjectKind{
		SubjectDataProcessingActivity,
		SubjectAISystem,
	}
}

// IsValid checks if the subject kind is valid
func (k SubjectKind) IsValid() bool {
	switch k {
	case SubjectDataProcessingActivity,
		SubjectAISystem:
		return true
	default:
		return false
	}
}

// String returns the string representation of the subject kind
func (k SubjectKind) String() string {
	return string(k)
}

// ParseSubjectKind parses a string into a SubjectKind
func ParseSubjectKind(s string) (SubjectKind, error) {
	kind := SubjectKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid subject kind: %s", s)
	}
	return kind, nil
}
