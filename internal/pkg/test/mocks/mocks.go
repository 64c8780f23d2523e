package mocks

import (
	"context"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/messages"
	"github.com/airenas/interviewcoach/internal/pkg/persistence"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//Store is a testify mock of the submission store
type Store struct{ mock.Mock }

//FetchNextPending mock
func (m *Store) FetchNextPending(ctx context.Context) (*persistence.Submission, error) {
	args := m.Called(ctx)
	return To[*persistence.Submission](args.Get(0)), args.Error(1)
}

//MarkProcessed mock
func (m *Store) MarkProcessed(ctx context.Context, id primitive.ObjectID, transcript, feedback string, at time.Time) error {
	args := m.Called(ctx, id, transcript, feedback, at)
	return args.Error(0)
}

//MarkError mock
func (m *Store) MarkError(ctx context.Context, id primitive.ObjectID, msg string, at time.Time) error {
	args := m.Called(ctx, id, msg, at)
	return args.Error(0)
}

//Transcriber mock
type Transcriber struct{ mock.Mock }

//Transcribe mock
func (m *Transcriber) Transcribe(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

//Critic mock
type Critic struct{ mock.Mock }

//Critique mock
func (m *Critic) Critique(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

//Sender mock
type Sender struct{ mock.Mock }

//Send mock
func (m *Sender) Send(msg messages.Message, queue, replyQueue string) error {
	args := m.Called(msg, queue, replyQueue)
	return args.Error(0)
}

//To converts mock arg to the type, returns zero value for nil
func To[T interface{}](val interface{}) T {
	if val == nil {
		var res T
		return res
	}
	return val.(T)
}
