package repository

import (
	"context"
	"errors"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
)

// ErrNotFound is returned when the requested user row does not exist.
// Services translate it into their own sentinels; any other error from a
// repository is a storage fault and must propagate unchanged.
var ErrNotFound = errors.New("user record not found")

// UserRepository defines the interface for user-related database operations.
// Uniqueness of email, CPF and RG is enforced by database constraints; the
// Exists* methods let services pre-check and fail before writing anything.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByCPF(ctx context.Context, cpf string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByRG(ctx context.Context, rg string) (bool, error)

	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetProfilePicture(ctx context.Context, id int64, url string) error
	SetRoles(ctx context.Context, id int64, roles []string) error

	// SetTwoFactorSecret overwrites any pending secret; re-running setup is
	// the re-enrollment path.
	SetTwoFactorSecret(ctx context.Context, id int64, secret string) error
	EnableTwoFactor(ctx context.Context, id int64) error

	Delete(ctx context.Context, id int64) error
}
