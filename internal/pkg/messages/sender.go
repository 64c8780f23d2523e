package messages

import "github.com/airenas/interviewcoach/internal/pkg/cmdapp"

//Message is any value serializable to the broker
type Message interface{}

// Sender sends a messages to message broker
type Sender interface {
	Send(message Message, queue string, replyQueue string) error
}

// NoopSender is a sender doing nothing, used when no broker is configured
type NoopSender struct {
}

// Send does nothing
func (s NoopSender) Send(message Message, queue string, replyQueue string) error {
	cmdapp.Log.Debug("Skip sending message")
	return nil
}
