package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var policyCfg config.Policy

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a policy file",
		Flags:   policyCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if policyCfg.Path() == "" {
				return goerr.New("--policy is required for validation")
			}

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "policy validation failed")
			}

			logger.Info("Policy validation passed",
				"path", policyCfg.Path(),
				"high_threshold", policy.Thresholds.High,
				"limited_threshold", policy.Thresholds.Limited,
				"assessment_threshold", policy.Thresholds.Assessment,
				"large_scale_threshold", policy.LargeScaleThreshold,
				"measure_entries", len(policy.Measures),
			)
			return nil
		},
	}
}
