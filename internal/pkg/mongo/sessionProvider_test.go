package mongo

import (
	"testing"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/stretchr/testify/assert"
)

func TestNewSessionProvider_Defaults(t *testing.T) {
	cmdapp.Config.Set("mongo.url", "")
	cmdapp.Config.Set("mongo.database", "")
	sp, err := NewSessionProvider()
	assert.Nil(t, err)
	assert.Equal(t, "mongodb://localhost:27017", sp.URL)
	assert.Equal(t, "web_app_db", sp.Database)
	assert.Equal(t, 10*time.Second, sp.Timeout)
	assert.Equal(t, 30*time.Second, sp.ConnectTimeout)
}

func TestNewSessionProvider_Config(t *testing.T) {
	cmdapp.Config.Set("mongo.url", "mongodb://mongo:27017")
	cmdapp.Config.Set("mongo.database", "olia")
	cmdapp.Config.Set("mongo.timeout", "2s")
	defer func() {
		cmdapp.Config.Set("mongo.url", "")
		cmdapp.Config.Set("mongo.database", "")
		cmdapp.Config.Set("mongo.timeout", "")
	}()
	sp, err := NewSessionProvider()
	assert.Nil(t, err)
	assert.Equal(t, "mongodb://mongo:27017", sp.URL)
	assert.Equal(t, "olia", sp.Database)
	assert.Equal(t, 2*time.Second, sp.Timeout)
}

func TestDurationOr(t *testing.T) {
	assert.Equal(t, time.Second, durationOr(0, time.Second))
	assert.Equal(t, time.Minute, durationOr(time.Minute, time.Second))
}
