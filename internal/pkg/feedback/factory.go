package feedback

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//Critic turns an answer transcript into feedback
type Critic interface {
	Critique(ctx context.Context, text string) (string, error)
}

//NewCritic selects the critic by feedback.provider: openai (default) or vertex.
// The returned closer may be nil.
func NewCritic(ctx context.Context, httpClient *http.Client) (Critic, io.Closer, error) {
	p := strings.ToLower(strings.TrimSpace(cmdapp.Config.GetString("feedback.provider")))
	switch p {
	case "", "openai":
		c, err := NewOpenAICritic(httpClient)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case "vertex":
		c, err := NewVertexCritic(ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	}
	return nil, nil, errors.Errorf("unknown feedback.provider '%s'", p)
}
