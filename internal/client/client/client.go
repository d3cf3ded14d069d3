package client

import (
	"context"

	"github.com/vilarbucks/vilarbucks/internal/client/models"
)

// Client is the remote Vilarbucks API as the client application consumes it.
// Every method that talks to the server returns an *AuthError on failure.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	GetCurrentProfile(ctx context.Context, token string) (*models.Profile, error)
	Logout(ctx context.Context, token string) error

	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CompleteTask(ctx context.Context, token string, taskID int64) (*models.TaskCompletion, error)

	Ping(ctx context.Context) error
	Close() error
}
