package usecases

import (
	"context"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/discord"
)

// CredentialSealer protects the bot token at rest.
type CredentialSealer interface {
	Seal(plaintext string) (string, error)
	Open(stored string) (string, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, e activityApp.Entry)
}

// BotIdentityFetcher resolves the bot account behind a token.
type BotIdentityFetcher interface {
	GetCurrentUser(ctx context.Context, token string) (*discord.User, error)
}
