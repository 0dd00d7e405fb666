package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	repo "github.com/cadastrolabs/cadastro-api/internal/domain/repository"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
)

// AuthService handles registration and first-factor login.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Logger: logger}
}

// RegisterInput carries the registration payload after binding validation
// (presence, email format, CPF checksum, password length).
type RegisterInput struct {
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
}

// AuthResult is the outcome of register/login. Token is empty when the
// account requires a second factor; the client must finish via the 2FA
// login step to obtain one.
type AuthResult struct {
	Token             string
	ExpiresAt         time.Time
	RequiresTwoFactor bool
	User              *entity.User
}

// Register creates a new account. Uniqueness is pre-checked against email,
// CPF and RG so no partial record is written on conflict; the password is
// stored only as a bcrypt hash. New accounts get the USER role and 2FA
// disabled — enrollment is a separate, explicit step.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if exists, err := s.Repo.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateEmail
	}
	if exists, err := s.Repo.ExistsByCPF(ctx, in.CPF); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateCPF
	}
	if exists, err := s.Repo.ExistsByRG(ctx, in.RG); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateRG
	}

	if in.Gender == "" {
		return nil, fmt.Errorf("%w: gender is required", ErrInvalidData)
	}
	if in.DateOfBirth.IsZero() {
		return nil, fmt.Errorf("%w: date of birth is required", ErrInvalidData)
	}
	if in.DateOfBirth.After(time.Now()) {
		return nil, fmt.Errorf("%w: date of birth cannot be in the future", ErrInvalidData)
	}
	if !in.TermsAccepted {
		return nil, fmt.Errorf("%w: terms must be accepted", ErrInvalidData)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:              in.Name,
		Email:             in.Email,
		Password:          hash,
		CPF:               in.CPF,
		RG:                in.RG,
		Phone:             in.Phone,
		Address:           in.Address,
		Number:            in.Number,
		Complement:        in.Complement,
		Neighborhood:      in.Neighborhood,
		City:              in.City,
		State:             in.State,
		ZipCode:           in.ZipCode,
		Gender:            in.Gender,
		DateOfBirth:       in.DateOfBirth,
		TermsAccepted:     in.TermsAccepted,
		ProfilePictureURL: in.ProfilePictureURL,
		Roles:             entity.DefaultRoles(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u.Email, u.Roles)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("token generation failed after register")
		}
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Login verifies the credentials. Accounts with 2FA enabled get no token
// here; the response only flags that the second factor is required.
// Only a missing row maps to ErrInvalidCredentials; a storage fault
// propagates so the caller sees a server error, not a rejection.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	if u.TwoFactorEnabled {
		return &AuthResult{RequiresTwoFactor: true, User: u}, nil
	}

	token, exp, err := s.JWT.Generate(u.Email, u.Roles)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}
