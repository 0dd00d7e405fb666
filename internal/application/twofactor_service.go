package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	repo "github.com/cadastrolabs/cadastro-api/internal/domain/repository"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
	"github.com/cadastrolabs/cadastro-api/pkg/totp"
)

// TwoFactorService orchestrates the three-step TOTP protocol:
// setup (secret issued) → verify (first valid code enables 2FA and logs in)
// → 2FA login (re-authentication, no state change).
type TwoFactorService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	TOTP   *totp.Engine
	Logger *logrus.Logger
}

func NewTwoFactorService(r repo.UserRepository, jwt *helpers.JWTManager, engine *totp.Engine, logger *logrus.Logger) *TwoFactorService {
	return &TwoFactorService{Repo: r, JWT: jwt, TOTP: engine, Logger: logger}
}

// SetupResult is returned from enrollment: the secret for manual entry and
// a QR data URI for authenticator apps.
type SetupResult struct {
	Secret string
	QRCode string
}

// TokenResult is a signed token plus its expiry.
type TokenResult struct {
	Token     string
	ExpiresAt time.Time
}

// Setup issues a fresh secret for the authenticated caller and stores it
// without enabling 2FA. Calling setup again before verification silently
// replaces the pending secret — that is the re-enrollment path, gated by
// the caller's own verified identity.
func (s *TwoFactorService) Setup(ctx context.Context, email string) (*SetupResult, error) {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	secret, err := s.TOTP.GenerateSecret(u.Email)
	if err != nil {
		return nil, err
	}
	qr, err := s.TOTP.QRCodeDataURI(u.Email, secret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetTwoFactorSecret(ctx, u.ID, secret); err != nil {
		return nil, err
	}
	return &SetupResult{Secret: secret, QRCode: qr}, nil
}

// Verify checks the submitted code against the stored secret; the first
// success enables 2FA and doubles as a login, returning a usable token.
// Calling it again once enabled is harmless.
func (s *TwoFactorService) Verify(ctx context.Context, email, code string) (*TokenResult, error) {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	// No secret means setup never ran. The empty string decodes as a valid
	// base32 key, so it must never reach the TOTP check.
	if u.TwoFactorSecret == "" {
		return nil, ErrInvalidTwoFactorCode
	}
	if !s.TOTP.ValidateCode(u.TwoFactorSecret, code) {
		return nil, ErrInvalidTwoFactorCode
	}

	if !u.TwoFactorEnabled {
		if err := s.Repo.EnableTwoFactor(ctx, u.ID); err != nil {
			return nil, err
		}
		if s.Logger != nil {
			s.Logger.WithField("email", u.Email).Info("two-factor authentication enabled")
		}
	}

	token, exp, err := s.JWT.Generate(u.Email, u.Roles)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: token, ExpiresAt: exp}, nil
}

func (s *TwoFactorService) getUser(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// LoginWith2FA completes the login of an already-enrolled account. Pure
// re-authentication: nothing is mutated.
func (s *TwoFactorService) LoginWith2FA(ctx context.Context, email, code string) (*TokenResult, error) {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !u.TwoFactorEnabled {
		return nil, ErrTwoFactorNotEnabled
	}
	if u.TwoFactorSecret == "" {
		return nil, ErrInvalidTwoFactorCode
	}
	if !s.TOTP.ValidateCode(u.TwoFactorSecret, code) {
		return nil, ErrInvalidTwoFactorCode
	}

	token, exp, err := s.JWT.Generate(u.Email, u.Roles)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: token, ExpiresAt: exp}, nil
}
