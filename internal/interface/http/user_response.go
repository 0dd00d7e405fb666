package handlers

import (
	"time"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
)

// UserResponse is the public profile view. The password hash and the TOTP
// secret never leave the service.
type UserResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	CPF               string    `json:"cpf"`
	RG                string    `json:"rg"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	Number            string    `json:"number"`
	Complement        string    `json:"complement,omitempty"`
	Neighborhood      string    `json:"neighborhood"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	ZipCode           string    `json:"zip_code"`
	Gender            string    `json:"gender"`
	DateOfBirth       string    `json:"date_of_birth"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	Roles             []string  `json:"roles"`
	TwoFactorEnabled  bool      `json:"two_factor_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		CPF:               u.CPF,
		RG:                u.RG,
		Phone:             u.Phone,
		Address:           u.Address,
		Number:            u.Number,
		Complement:        u.Complement,
		Neighborhood:      u.Neighborhood,
		City:              u.City,
		State:             u.State,
		ZipCode:           u.ZipCode,
		Gender:            u.Gender,
		DateOfBirth:       u.DateOfBirth.Format("2006-01-02"),
		ProfilePictureURL: u.ProfilePictureURL,
		Roles:             u.Roles,
		TwoFactorEnabled:  u.TwoFactorEnabled,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func newUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}
