package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/service/classifier"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var output string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output destination: file path, gs://bucket/object, or - for stdout",
			Value:       "-",
			Sources:     cli.EnvVars("THEMIS_EXPORT_OUTPUT"),
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Export all activities and assessments as JSONL",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			svc, err := classifier.New(nil)
			if err != nil {
				return goerr.Wrap(err, "failed to create classifier")
			}
			uc := usecase.New(repo, svc)

			w, closer, err := openExportSink(ctx, output)
			if err != nil {
				return err
			}

			if err := uc.Export(ctx, w); err != nil {
				_ = closer()
				return goerr.Wrap(err, "failed to export records")
			}

			if err := closer(); err != nil {
				return goerr.Wrap(err, "failed to finalize export output", goerr.V("output", output))
			}

			logger.Info("Export completed", "output", output)
			return nil
		},
	}
}

// openExportSink resolves the output destination to a writer. The returned
// closer must be called to flush the sink, even on error.
func openExportSink(ctx context.Context, output string) (io.Writer, func() error, error) {
	switch {
	case output == "-" || output == "":
		return os.Stdout, func() error { return nil }, nil

	case strings.HasPrefix(output, "gs://"):
		bucket, object, ok := strings.Cut(strings.TrimPrefix(output, "gs://"), "/")
		if !ok || bucket == "" || object == "" {
			return nil, nil, goerr.New("invalid GCS output, expected gs://bucket/object",
				goerr.V("output", output))
		}

		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create storage client")
		}

		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = "application/x-ndjson"
		closer := func() error {
			if err := w.Close(); err != nil {
				_ = client.Close()
				return err
			}
			return client.Close()
		}
		return w, closer, nil

	default:
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Create(output)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
		}
		return f, f.Close, nil
	}
}
