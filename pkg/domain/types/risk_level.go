package types

import "fmt"

// RiskLevel is a categorical classification outcome. The EU AI Act and the
// GDPR use different scales, so both are defined here as the same underlying
// type with separate value sets and validators.
type RiskLevel string

// AI system scale (EU AI Act)
const (
	RiskLevelMinimal      RiskLevel = "MINIMAL"
	RiskLevelLimited      RiskLevel = "LIMITED"
	RiskLevelHigh         RiskLevel = "HIGH"
	RiskLevelUnacceptable RiskLevel = "UNACCEPTABLE"
)

// Data-processing activity scale (GDPR / DSFA)
const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
)

// AllAIRiskLevels returns the AI system scale in ascending severity order
func AllAIRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelMinimal,
		RiskLevelLimited,
		RiskLevelHigh,
		RiskLevelUnacceptable,
	}
}

// AllActivityRiskLevels returns the processing-activity scale in ascending severity order
func AllActivityRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
	}
}

// IsValidForAISystem checks if the level belongs to the AI system scale
func (l RiskLevel) IsValidForAISystem() bool {
	switch l {
	case RiskLevelMinimal,
		RiskLevelLimited,
		RiskLevelHigh,
		RiskLevelUnacceptable:
		return true
	default:
		return false
	}
}

// IsValidForActivity checks if the level belongs to the processing-activity scale
func (l RiskLevel) IsValidForActivity() bool {
	switch l {
	case RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh:
		return true
	default:
		return false
	}
}

// Ordinal returns the position of the level on its scale, lowest severity
// first. HIGH is shared between both scales and keeps a single value.
func (l RiskLevel) Ordinal() int {
	switch l {
	case RiskLevelMinimal, RiskLevelLow:
		return 0
	case RiskLevelLimited, RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelUnacceptable:
		return 3
	default:
		return -1
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel of either scale
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValidForAISystem() && !level.IsValidForActivity() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}
