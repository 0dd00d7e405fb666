package application

import "errors"

// Error taxonomy surfaced by the services. Handlers translate these into
// HTTP statuses; nothing is retried or swallowed below this layer.
var (
	// Registration conflicts (409).
	ErrDuplicateEmail = errors.New("there is already a user with this email")
	ErrDuplicateCPF   = errors.New("there is already a user with this CPF")
	ErrDuplicateRG    = errors.New("there is already a user with this RG")

	// Malformed or missing input that survives binding validation (422).
	ErrInvalidData = errors.New("invalid data")

	// Deliberately does not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound         = errors.New("user not found")
	ErrIncorrectPassword    = errors.New("incorrect current password")
	ErrInvalidTwoFactorCode = errors.New("invalid 2FA code")
	ErrTwoFactorNotEnabled  = errors.New("this user does not have 2FA enabled")

	ErrInvalidCEP     = errors.New("invalid CEP format, use only 8 numeric digits")
	ErrCEPNotFound    = errors.New("CEP not found")
	ErrCEPUnavailable = errors.New("CEP lookup service is not responding")
)
