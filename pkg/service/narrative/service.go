package narrative

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/themis/pkg/domain/model"
)

//go:embed prompt/draft.md
var draftPromptTmpl string

var draftPrompt = template.Must(template.New("draft").Parse(draftPromptTmpl))

// Service drafts a free-form narrative for a computed assessment using an
// external text model. The returned text is opaque to the rest of the
// system: it is stored verbatim and never parsed, and it has no influence
// on the computed result.
type Service struct {
	llmClient gollem.LLMClient
}

// New creates a narrative service backed by the given LLM client
func New(llmClient gollem.LLMClient) *Service {
	return &Service{llmClient: llmClient}
}

type draftContext struct {
	Activity   *model.Activity
	Assessment *model.Assessment
}

// Draft generates the narrative text. Activity may be nil for ad-hoc
// classifications.
func (x *Service) Draft(ctx context.Context, activity *model.Activity, assessment *model.Assessment) (string, error) {
	var buf bytes.Buffer
	if err := draftPrompt.Execute(&buf, &draftContext{
		Activity:   activity,
		Assessment: assessment,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to build narrative prompt")
	}

	session, err := x.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buf.String()))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate narrative",
			goerr.V("assessmentID", assessment.ID))
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "\n")), nil
}
