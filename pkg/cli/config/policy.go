package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Policy holds the CLI flags for the classification policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a TOML policy file (omit to use the built-in policy)",
			Sources:     cli.EnvVars("THEMIS_POLICY"),
			Destination: &p.path,
		},
	}
}

// Path returns the configured policy file path, empty when unset
func (p *Policy) Path() string {
	return p.path
}

// Configure loads the policy file if one was given, otherwise the built-in
// default policy. Omitted weights and thresholds keep their defaults.
func (p *Policy) Configure() (*model.Policy, error) {
	policy := model.DefaultPolicy()
	if p.path == "" {
		return policy, nil
	}
	if err := LoadPolicyFile(p.path, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// LogValue returns log attributes of the policy configuration
func (p Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", p.path),
	)
}

type policyFile struct {
	Weights struct {
		AutomatedDecisionMaking *float64 `toml:"automated_decision_making"`
		Profiling               *float64 `toml:"profiling"`
		SpecialCategoryData     *float64 `toml:"special_category_data"`
		LargeScale              *float64 `toml:"large_scale"`
		InnovativeTechnology    *float64 `toml:"innovative_technology"`
		NoHumanOversight        *float64 `toml:"no_human_oversight"`
	} `toml:"weights"`

	Thresholds struct {
		High       *float64 `toml:"high"`
		Limited    *float64 `toml:"limited"`
		Assessment *float64 `toml:"assessment"`
	} `toml:"thresholds"`

	LargeScaleThreshold *int64 `toml:"large_scale_threshold"`

	Measures []struct {
		SubjectKind string   `toml:"subject_kind"`
		RiskLevel   string   `toml:"risk_level"`
		Measures    []string `toml:"measures"`
	} `toml:"measures"`
}

// LoadPolicyFile reads a TOML policy file and applies it on top of the given
// policy in place. The merged policy is validated before return.
func LoadPolicyFile(path string, policy *model.Policy) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	raw, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read policy file", goerr.V("path", path))
	}

	var file policyFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return goerr.Wrap(types.ErrInvalidPolicy, "failed to parse policy file",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat(&policy.Weights.AutomatedDecisionMaking, file.Weights.AutomatedDecisionMaking)
	setFloat(&policy.Weights.Profiling, file.Weights.Profiling)
	setFloat(&policy.Weights.SpecialCategoryData, file.Weights.SpecialCategoryData)
	setFloat(&policy.Weights.LargeScale, file.Weights.LargeScale)
	setFloat(&policy.Weights.InnovativeTechnology, file.Weights.InnovativeTechnology)
	setFloat(&policy.Weights.NoHumanOversight, file.Weights.NoHumanOversight)
	setFloat(&policy.Thresholds.High, file.Thresholds.High)
	setFloat(&policy.Thresholds.Limited, file.Thresholds.Limited)
	setFloat(&policy.Thresholds.Assessment, file.Thresholds.Assessment)
	if file.LargeScaleThreshold != nil {
		policy.LargeScaleThreshold = *file.LargeScaleThreshold
	}

	for _, m := range file.Measures {
		kind := types.SubjectKind(m.SubjectKind)
		if !kind.IsValid() {
			return goerr.Wrap(types.ErrInvalidPolicy, "invalid subject kind in measure entry",
				goerr.V("subject_kind", m.SubjectKind))
		}
		level := types.RiskLevel(m.RiskLevel)
		valid := (kind == types.SubjectAISystem && level.IsValidForAISystem()) ||
			(kind == types.SubjectDataProcessingActivity && level.IsValidForActivity())
		if !valid {
			return goerr.Wrap(types.ErrInvalidPolicy, "invalid risk level in measure entry",
				goerr.V("subject_kind", m.SubjectKind), goerr.V("risk_level", m.RiskLevel))
		}
		policy.Measures[model.MeasureKey{Kind: kind, Level: level}] = m.Measures
	}

	if err := policy.Validate(); err != nil {
		return err
	}
	return nil
}
