package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/service/classifier"
	"github.com/secmon-lab/themis/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdClassify() *cli.Command {
	var inputPath string
	var asJSON bool
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a JSON input file (- for stdin)",
			Value:       "-",
			Destination: &inputPath,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "classify",
		Aliases: []string{"c"},
		Usage:   "Classify a single subject from a JSON description",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var r io.Reader
			if inputPath == "-" {
				r = os.Stdin
			} else {
				// #nosec G304 - path is expected to be provided by CLI argument
				f, err := os.Open(inputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to open input file", goerr.V("path", inputPath))
				}
				defer safe.Close(ctx, f)
				r = f
			}

			var input model.AssessmentInput
			if err := json.NewDecoder(r).Decode(&input); err != nil {
				return goerr.Wrap(err, "failed to decode input JSON")
			}

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load policy")
			}

			svc, err := classifier.New(policy)
			if err != nil {
				return goerr.Wrap(err, "failed to create classifier")
			}

			result, err := svc.Classify(&input)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return goerr.Wrap(err, "failed to encode result")
				}
				return nil
			}

			printResult(&input, result)
			return nil
		},
	}
}

func levelPrinter(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelUnacceptable:
		return color.New(color.FgWhite, color.BgRed, color.Bold)
	case types.RiskLevelHigh:
		return color.New(color.FgRed, color.Bold)
	case types.RiskLevelLimited, types.RiskLevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func printResult(input *model.AssessmentInput, result *model.AssessmentResult) {
	fmt.Printf("Subject:    %s\n", input.SubjectKind)
	fmt.Printf("Risk score: %.2f\n", result.RiskScore)
	fmt.Printf("Risk level: %s\n", levelPrinter(result.RiskLevel).Sprint(result.RiskLevel))

	if len(result.TriggeredFactors) > 0 {
		factors := make([]string, len(result.TriggeredFactors))
		for i, f := range result.TriggeredFactors {
			factors[i] = f.String()
		}
		fmt.Printf("Factors:    %s\n", strings.Join(factors, ", "))
	}

	if result.AssessmentRequired {
		fmt.Println("Impact assessment required")
	}
	if result.ConformityAssessmentRequired {
		fmt.Println("Conformity assessment required")
	}
	if result.CEMarkingRequired {
		fmt.Println("CE marking required")
	}
	if result.TransparencyRequired {
		fmt.Println("Transparency obligations apply")
	}

	if len(result.RequiredMeasures) > 0 {
		fmt.Println("Measures:")
		for _, m := range result.RequiredMeasures {
			fmt.Printf("  - %s\n", m)
		}
	}
}
