package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	httpctrl "github.com/secmon-lab/themis/pkg/controller/http"
	"github.com/secmon-lab/themis/pkg/service/classifier"
	"github.com/secmon-lab/themis/pkg/service/narrative"
	"github.com/secmon-lab/themis/pkg/service/worker"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var reassessInterval time.Duration
	var policyCfg config.Policy
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("THEMIS_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "reassess-interval",
			Usage:       "Interval for periodic reassessment of registered activities (0 to disable)",
			Sources:     cli.EnvVars("THEMIS_REASSESS_INTERVAL"),
			Destination: &reassessInterval,
		},
	}

	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load policy")
			}

			svc, err := classifier.New(policy)
			if err != nil {
				return goerr.Wrap(err, "failed to create classifier")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			var ucOpts []usecase.Option

			notifySvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notification")
			}
			if notifySvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotify(notifySvc))
				logger.Info("Slack notification enabled", "slack", slackCfg)
			} else {
				logger.Info("Slack not configured, notifications are disabled")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithNarrative(narrative.New(llmClient)))
				logger.Info("Narrative generation enabled", "gemini", geminiCfg)
			} else {
				logger.Info("Gemini not configured, narrative generation is disabled")
			}

			uc := usecase.New(repo, svc, ucOpts...)

			var reassessWorker *worker.ReassessWorker
			if reassessInterval > 0 {
				reassessWorker = worker.NewReassessWorker(uc, reassessInterval)
				if err := reassessWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start reassess worker")
				}
				logger.Info("Reassess worker started", "interval", reassessInterval)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr, "repository", repoCfg, "policy", policyCfg)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				if reassessWorker != nil {
					reassessWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
