// Package firebase backs the monitor with Firebase Realtime Database and
// Cloud Messaging.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/config"
)

// Database is the slice of the realtime database the stores need.
type Database interface {
	Push(ctx context.Context, path string, v any) (string, error)
	Get(ctx context.Context, path string, v any) error
}

type rtdb struct {
	client *db.Client
}

func (r *rtdb) Push(ctx context.Context, path string, v any) (string, error) {
	ref, err := r.client.NewRef(path).Push(ctx, v)
	if err != nil {
		return "", err
	}
	return ref.Key, nil
}

func (r *rtdb) Get(ctx context.Context, path string, v any) error {
	return r.client.NewRef(path).Get(ctx, v)
}

// Backend bundles the stores built from one firebase app.
type Backend struct {
	Alerts    *AlertStore
	Tokens    *TokenStore
	Messenger *Messenger
}

func NewBackend(ctx context.Context, cfg config.FirebaseConfig) (*Backend, error) {
	logger := common.GetLoggerWith(common.LoggerNameFirebase)

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: cfg.DatabaseURL,
		ProjectID:   cfg.ProjectID,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init realtime database client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	logger.Info("Firebase backend ready",
		zap.String("database_url", cfg.DatabaseURL),
		zap.String("instance", cfg.Instance),
		zap.String("region", cfg.Region))

	database := &rtdb{client: dbClient}
	return &Backend{
		Alerts:    NewAlertStore(database),
		Tokens:    NewTokenStore(database),
		Messenger: NewMessenger(messagingClient),
	}, nil
}

func AlertsPath(ownerID string) string {
	return "alerts/" + ownerID
}

func TokenPath(ownerID string) string {
	return "users/" + ownerID + "/fcmToken"
}
