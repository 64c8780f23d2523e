package feedback

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	errs "github.com/airenas/interviewcoach/internal/pkg/err"
	pkgerrors "github.com/pkg/errors"
)

const defaultVertexModel = "gemini-1.5-pro"

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

//VertexCritic produces feedback with a Gemini model on Vertex AI
type VertexCritic struct {
	model  contentGenerator
	client *genai.Client
}

//NewVertexCritic creates the critic from vertex.* and feedback.* config
func NewVertexCritic(ctx context.Context) (*VertexCritic, error) {
	project := cmdapp.Config.GetString("vertex.project")
	location := cmdapp.Config.GetString("vertex.location")
	if project == "" || location == "" {
		return nil, pkgerrors.New("no vertex.project or vertex.location configured")
	}
	client, err := genai.NewClient(ctx, project, location)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "can't init vertex client")
	}
	name := cmdapp.Config.GetString("feedback.model")
	if name == "" {
		name = defaultVertexModel
	}
	model := client.GenerativeModel(name)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(CoachPrompt)}}
	model.SetTemperature(temperature())
	cmdapp.Log.Infof("Vertex critic model: %s (%s/%s)", name, project, location)
	return &VertexCritic{model: model, client: client}, nil
}

//Critique returns feedback for the answer text
func (c *VertexCritic) Critique(ctx context.Context, text string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", errs.WrapMsg(errs.ErrFeedback, "feedback timeout", err)
		}
		return "", errs.Wrap(errs.ErrFeedback, err)
	}
	res := extractText(resp)
	if res == "" {
		return "", errs.New(errs.ErrFeedback, "empty feedback")
	}
	return res, nil
}

//Close releases the vertex client
func (c *VertexCritic) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}
