// Package users contains the account store.
package users

import (
	"context"

	"github.com/dmitrijs2005/patientauth/internal/server/models"
)

// Repository reads and writes user accounts. Email lookups are exact
// (case-sensitive) matches.
type Repository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetIdentityByID(ctx context.Context, id string) (*models.UserIdentity, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
