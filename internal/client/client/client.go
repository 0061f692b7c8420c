package client

import (
	"context"

	"github.com/dmitrijs2005/patientauth/internal/client/models"
)

// Client is the account API as seen by the CLI.
type Client interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.InsertResult, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	WhoAmI(ctx context.Context, token string) (*models.Identity, error)
}

// Pinger reports server liveness.
type Pinger interface {
	Ping(ctx context.Context) error
	Close() error
}
