package openaiutil

import (
	"net/http"
	"testing"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_NoKey(t *testing.T) {
	cmdapp.Config.Set("openai.apiKey", "")
	_, err := NewConfig(nil)
	assert.NotNil(t, err)
}

func TestNewConfig(t *testing.T) {
	cmdapp.Config.Set("openai.apiKey", "key")
	cmdapp.Config.Set("openai.url", "http://localhost:8080/v1/")
	defer cmdapp.Config.Set("openai.apiKey", "")
	defer cmdapp.Config.Set("openai.url", "")
	hc := &http.Client{}

	cfg, err := NewConfig(hc)

	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	assert.Equal(t, hc, cfg.HTTPClient)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "quota exceeded", Message(&openai.APIError{Message: "quota exceeded", HTTPStatusCode: 429}))
	assert.Equal(t, "olia", Message(errors.Wrap(&openai.RequestError{HTTPStatusCode: 500, Err: errors.New("olia")}, "x")))
	assert.Equal(t, "olia", Message(errors.New("olia")))
}

func TestNewConfig_WrongURL(t *testing.T) {
	cmdapp.Config.Set("openai.apiKey", "key")
	cmdapp.Config.Set("openai.url", "localhost")
	defer cmdapp.Config.Set("openai.apiKey", "")
	defer cmdapp.Config.Set("openai.url", "")

	_, err := NewConfig(nil)

	assert.NotNil(t, err)
}
