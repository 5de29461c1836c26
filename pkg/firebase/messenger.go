package firebase

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

// Sender is satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type Messenger struct {
	sender Sender
}

func NewMessenger(sender Sender) *Messenger {
	return &Messenger{sender: sender}
}

func (m *Messenger) Send(ctx context.Context, message *models.PushMessage) (string, error) {
	return m.sender.Send(ctx, ToMessage(message))
}

func ToMessage(message *models.PushMessage) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: message.Title,
			Body:  message.Body,
		},
		Data:  message.Data,
		Token: message.Token,
	}
}
