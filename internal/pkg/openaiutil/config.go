package openaiutil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/airenas/interviewcoach/internal/pkg/utils"
	pkgerrors "github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

//NewConfig prepares OpenAI client config from openai.* settings
func NewConfig(httpClient *http.Client) (openai.ClientConfig, error) {
	key := strings.TrimSpace(cmdapp.Config.GetString("openai.apiKey"))
	if key == "" {
		return openai.ClientConfig{}, pkgerrors.New("no openai.apiKey configured")
	}
	res := openai.DefaultConfig(key)
	u, err := utils.GetURLFromConfig("openai.url")
	if err != nil {
		return openai.ClientConfig{}, err
	}
	if u != "" {
		cmdapp.Log.Infof("OpenAI url: %s", utils.URLToLog(u))
		res.BaseURL = strings.TrimSuffix(u, "/")
	}
	if httpClient != nil {
		res.HTTPClient = httpClient
	}
	return res, nil
}

//Message extracts a short user readable message from OpenAI client errors
func Message(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		return reqErr.Err.Error()
	}
	return err.Error()
}
