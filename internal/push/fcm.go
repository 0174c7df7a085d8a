package push

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMNotifier delivers messages through Firebase Cloud Messaging.
type FCMNotifier struct {
	client *messaging.Client
}

// NewFCMNotifier initializes a Firebase app from a service account file.
func NewFCMNotifier(ctx context.Context, credentialsFile string) (*FCMNotifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMNotifier{client: client}, nil
}

// Send pushes a notification to a single device.
func (n *FCMNotifier) Send(ctx context.Context, token string, msg Message) error {
	if token == "" {
		return ErrNoToken
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: msg.Title,
				Body:  msg.Body,
			},
		},
	}

	if _, err := n.client.Send(ctx, message); err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

// New returns an FCMNotifier when credentials are configured and falls back
// to a LogNotifier otherwise.
func New(ctx context.Context, credentialsFile string) Notifier {
	if credentialsFile == "" {
		log.Println("FIREBASE_CREDENTIALS_FILE not set, push notifications will be logged only")
		return NewLogNotifier()
	}

	n, err := NewFCMNotifier(ctx, credentialsFile)
	if err != nil {
		log.Printf("Firebase initialization failed, falling back to log notifier: %v", err)
		return NewLogNotifier()
	}
	log.Println("Firebase Cloud Messaging initialized")
	return n
}
