package entity

import (
	"time"
)

// User is the aggregate root for the registration domain.
// Passwords are stored as bcrypt hashes in Password field; the plaintext
// never reaches persistence.
//
// TwoFactorSecret is set when enrollment starts and TwoFactorEnabled only
// flips on the first successful verification, so an enabled account always
// has a secret.
type User struct {
	ID                int64
	Name              string
	Email             string
	Password          string
	CPF               string
	RG                string
	Phone             string
	Address           string
	Number            string
	Complement        string
	Neighborhood      string
	City              string
	State             string
	ZipCode           string
	Gender            string
	DateOfBirth       time.Time
	TermsAccepted     bool
	ProfilePictureURL string
	Roles             []string
	TwoFactorSecret   string
	TwoFactorEnabled  bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
