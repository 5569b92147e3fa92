package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/slack-go/slack"
)

// client implements Service on top of the Slack Web API
type client struct {
	api     *slack.Client
	channel string
}

// New creates a Slack-backed notification service posting to the given channel
func New(token, channel string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return &client{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

func levelColor(level types.RiskLevel) string {
	switch level {
	case types.RiskLevelUnacceptable:
		return "#000000"
	case types.RiskLevelHigh:
		return "#d32f2f"
	case types.RiskLevelLimited, types.RiskLevelMedium:
		return "#f9a825"
	default:
		return "#388e3c"
	}
}

// NotifyAssessment posts a summary of the assessment outcome
func (c *client) NotifyAssessment(ctx context.Context, activity *model.Activity, assessment *model.Assessment) error {
	subject := assessment.Input.SubjectKind.String()
	title := fmt.Sprintf("Risk assessment: %s", assessment.Result.RiskLevel)
	if activity != nil {
		title = fmt.Sprintf("Risk assessment: %s (#%d %s)",
			assessment.Result.RiskLevel, activity.ID, activity.Name)
	}

	fields := []slack.AttachmentField{
		{Title: "Subject", Value: subject, Short: true},
		{Title: "Score", Value: fmt.Sprintf("%.2f", assessment.Result.RiskScore), Short: true},
	}
	if len(assessment.Result.TriggeredFactors) > 0 {
		value := ""
		for i, f := range assessment.Result.TriggeredFactors {
			if i > 0 {
				value += "\n"
			}
			value += f.String()
		}
		fields = append(fields, slack.AttachmentField{
			Title: "Triggered factors",
			Value: value,
		})
	}

	attachment := slack.Attachment{
		Color:  levelColor(assessment.Result.RiskLevel),
		Title:  title,
		Fields: fields,
		Footer: assessment.ID.String(),
	}

	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionAttachments(attachment),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post assessment notification",
			goerr.V("channel", c.channel),
			goerr.V("assessmentID", assessment.ID),
		)
	}

	return nil
}
