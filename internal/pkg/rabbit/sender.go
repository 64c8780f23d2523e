package rabbit

import (
	"encoding/json"
	"sync"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/airenas/interviewcoach/internal/pkg/messages"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

//Sender performs messages sending using rabbit mq broker
type Sender struct {
	ChannelProvider *ChannelProvider
	declared        map[string]bool
	m               sync.Mutex
}

//NewSender initializes rabbit sender
func NewSender(provider *ChannelProvider) *Sender {
	return &Sender{ChannelProvider: provider, declared: make(map[string]bool)}
}

//Send sends the message to a durable queue, declares the queue on first use
func (sender *Sender) Send(message messages.Message, queue string, replyQueue string) error {
	qName := sender.ChannelProvider.QueueName(queue)
	cmdapp.Log.Infof("Sending message to %s", qName)

	msgBytes, err := getBytes(message)
	if err != nil {
		return errors.Wrap(err, "Can't marshal message")
	}

	sender.m.Lock()
	defer sender.m.Unlock()
	err = sender.ChannelProvider.RunOnChannelWithRetry(func(ch *amqp.Channel) error {
		if !sender.declared[qName] {
			if _, err := Declare(ch, qName); err != nil {
				return errors.Wrap(err, "Can't declare queue "+qName)
			}
			sender.declared[qName] = true
		}
		return ch.Publish(
			"", // exchange
			qName,
			false, // mandatory
			false,
			amqp.Publishing{
				DeliveryMode: amqp.Persistent,
				ContentType:  "application/json",
				Body:         msgBytes,
				ReplyTo:      sender.ChannelProvider.QueueName(replyQueue),
			})
	})
	if err != nil {
		sender.declared = make(map[string]bool)
		return errors.Wrap(err, "Can't send message")
	}
	return nil
}

func getBytes(message messages.Message) ([]byte, error) {
	if b, ok := message.([]byte); ok {
		return b, nil
	}
	return json.Marshal(message)
}
