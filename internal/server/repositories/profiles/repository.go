// Package profiles contains the patient profile store.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/patientauth/internal/server/models"
)

type Repository interface {
	// Create inserts the profile and reports the driver-level insert result.
	Create(ctx context.Context, p *models.ProfileDetails) (*models.InsertResult, error)
}
