package feedback

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	errs "github.com/airenas/interviewcoach/internal/pkg/err"
	"github.com/airenas/interviewcoach/internal/pkg/openaiutil"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-4o"
	defaultTemperature = 0.7
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

//OpenAICritic produces feedback with OpenAI chat completion API
type OpenAICritic struct {
	client      chatClient
	model       string
	temperature float32
}

//NewOpenAICritic creates the critic from config
func NewOpenAICritic(httpClient *http.Client) (*OpenAICritic, error) {
	cfg, err := openaiutil.NewConfig(httpClient)
	if err != nil {
		return nil, err
	}
	res := &OpenAICritic{client: openai.NewClientWithConfig(cfg)}
	res.model = cmdapp.Config.GetString("feedback.model")
	if res.model == "" {
		res.model = defaultOpenAIModel
	}
	res.temperature = temperature()
	cmdapp.Log.Infof("OpenAI critic model: %s, temperature %.2f", res.model, res.temperature)
	return res, nil
}

//Critique returns feedback for the answer text
func (c *OpenAICritic) Critique(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: CoachPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", errs.WrapMsg(errs.ErrFeedback, "feedback timeout", err)
		}
		return "", errs.WrapMsg(errs.ErrFeedback, openaiutil.Message(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.New(errs.ErrFeedback, "empty feedback")
	}
	res := strings.TrimSpace(resp.Choices[0].Message.Content)
	if res == "" {
		return "", errs.New(errs.ErrFeedback, "empty feedback")
	}
	return res, nil
}

func temperature() float32 {
	if cmdapp.Config.IsSet("feedback.temperature") {
		return float32(cmdapp.Config.GetFloat64("feedback.temperature"))
	}
	return defaultTemperature
}
