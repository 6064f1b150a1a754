package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	messagingClient *messaging.Client
	once            sync.Once
	initError       error
)

func InitFirebase(credentialsPath string) error {
	once.Do(func() {
		ctx := context.Background()

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, nil, opt)
		if err != nil {
			initError = err
			log.Printf("[FCM] Failed to init Firebase app: %v", err)
			return
		}

		messagingClient, err = app.Messaging(ctx)
		if err != nil {
			initError = err
			log.Printf("[FCM] Failed to get messaging client: %v", err)
			return
		}
	})

	return initError
}

// SendMultipleNotifications pushes a message to every device token and
// deletes tokens Firebase reports as unregistered.
func SendMultipleNotifications(
	db *sql.DB,
	tokens []string,
	title, body string,
	data map[string]string,
) (int, int, error) {

	if messagingClient == nil {
		if initError != nil {
			return 0, 0, initError
		}
		return 0, 0, errors.New("firebase not initialized")
	}

	message := &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:   data,
		Tokens: tokens,
	}

	response, err := messagingClient.SendEachForMulticast(context.Background(), message)
	if err != nil {
		return 0, 0, err
	}

	for i, resp := range response.Responses {
		if resp.Success {
			continue
		}
		log.Printf("[FCM] token error: %v", resp.Error)

		if messaging.IsUnregistered(resp.Error) {
			if _, err := db.Exec(`DELETE FROM fcm_tokens WHERE token = $1`, tokens[i]); err != nil {
				log.Printf("[FCM] Failed to delete dead token: %v", err)
			}
		}
	}

	return response.SuccessCount, response.FailureCount, nil
}
