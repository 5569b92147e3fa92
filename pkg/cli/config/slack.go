package config

import (
	"log/slog"

	"github.com/secmon-lab/themis/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for Slack notification
type Slack struct {
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Sources:     cli.EnvVars("THEMIS_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for assessment notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("THEMIS_SLACK_CHANNEL"),
			Destination: &x.channel,
		},
	}
}

// LogValue returns log attributes of the Slack configuration
func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
	)
}

// IsConfigured checks if Slack notification is fully configured
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channel != ""
}

// Configure creates a Slack notification service. Returns nil when Slack is
// not configured; notifications are disabled in that case.
func (x *Slack) Configure() (notify.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	return notify.New(x.botToken, x.channel)
}
