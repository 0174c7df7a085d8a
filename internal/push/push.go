package push

import (
	"context"
	"errors"
	"log"
)

// ErrNoToken is returned when a message is sent without a device token.
var ErrNoToken = errors.New("push: device token is required")

// Message is a single push notification.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notifier delivers push messages to a device token.
type Notifier interface {
	Send(ctx context.Context, token string, msg Message) error
}

// LogNotifier writes messages to the log instead of delivering them.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Send logs the message.
func (LogNotifier) Send(_ context.Context, token string, msg Message) error {
	if token == "" {
		return ErrNoToken
	}
	log.Printf("push (log only) to %s: %s - %s", maskToken(token), msg.Title, msg.Body)
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
