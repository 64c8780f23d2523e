package transcriber

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	errs "github.com/airenas/interviewcoach/internal/pkg/err"
	"github.com/airenas/interviewcoach/internal/pkg/openaiutil"
	pkgerrors "github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "whisper-1"

//Opener provides recorded audio by reference
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
}

type audioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

//Client converts recorded audio into text using OpenAI transcription API
type Client struct {
	opener   Opener
	client   audioClient
	model    string
	language string
}

//NewClient creates transcriber client from config
func NewClient(opener Opener, httpClient *http.Client) (*Client, error) {
	if opener == nil {
		return nil, pkgerrors.New("no artifact opener")
	}
	cfg, err := openaiutil.NewConfig(httpClient)
	if err != nil {
		return nil, err
	}
	res := &Client{opener: opener, client: openai.NewClientWithConfig(cfg)}
	res.model = cmdapp.Config.GetString("transcriber.model")
	if res.model == "" {
		res.model = defaultModel
	}
	res.language = cmdapp.Config.GetString("transcriber.language")
	cmdapp.Log.Infof("Transcriber model: %s", res.model)
	return res, nil
}

//Transcribe returns the text of the recorded answer
func (c *Client) Transcribe(ctx context.Context, ref string) (string, error) {
	r, name, err := c.opener.Open(ctx, ref)
	if err != nil {
		return "", errs.Wrap(errs.ErrTranscription, err)
	}
	defer r.Close()

	cmdapp.Log.Debugf("Sending %s for transcription", name)
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: name,
		Reader:   r,
		Language: c.language,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", errs.WrapMsg(errs.ErrTranscription, "transcription timeout", err)
		}
		return "", errs.WrapMsg(errs.ErrTranscription, openaiutil.Message(err), err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errs.New(errs.ErrTranscription, "empty transcript")
	}
	return text, nil
}
