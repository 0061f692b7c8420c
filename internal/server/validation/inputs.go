package validation

import (
	"github.com/dmitrijs2005/patientauth/internal/server/models"
)

// RegisterInput is the POST /register body.
type RegisterInput struct {
	Email       string        `json:"email" validate:"required,email,max=255"`
	Password    string        `json:"password" validate:"required,min=6,max=72"`
	FullName    string        `json:"fullName" validate:"required,max=255"`
	Role        *models.Role  `json:"role" validate:"omitempty,oneof=1 2"`
	UserDetails *ProfileInput `json:"user_details" validate:"required"`
}

// ProfileInput is the user_details object of RegisterInput.
type ProfileInput struct {
	Age      int     `json:"age" validate:"required,gt=0,lte=150"`
	Gender   string  `json:"gender" validate:"required,max=32"`
	HeightCm float64 `json:"height_cm" validate:"required,gt=0,lte=300"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0,lte=700"`
	Phone    string  `json:"phone" validate:"required,max=32"`
	Address  string  `json:"address" validate:"required,max=512"`
}

// LoginInput is the POST /login body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RoleOrDefault returns the requested role, or models.DefaultRole when the
// payload omitted it.
func (in *RegisterInput) RoleOrDefault() models.Role {
	if in.Role == nil {
		return models.DefaultRole
	}
	return *in.Role
}

// Profile maps the validated details onto a profile row for userID.
func (in *RegisterInput) Profile(userID string) *models.ProfileDetails {
	d := in.UserDetails
	return &models.ProfileDetails{
		UserID:   userID,
		FullName: in.FullName,
		Age:      d.Age,
		Gender:   d.Gender,
		WeightKg: d.WeightKg,
		HeightCm: d.HeightCm,
		Phone:    d.Phone,
		Address:  d.Address,
	}
}
