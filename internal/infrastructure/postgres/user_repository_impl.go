package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	"github.com/cadastrolabs/cadastro-api/internal/domain/repository"
)

const userColumns = `
	id, name, email, password_hash, cpf, rg, phone,
	address, number, complement, neighborhood, city, state, zip_code,
	gender, date_of_birth, terms_accepted, profile_picture_url,
	roles, COALESCE(two_factor_secret, ''), two_factor_enabled,
	created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.CPF, &u.RG, &u.Phone,
		&u.Address, &u.Number, &u.Complement, &u.Neighborhood, &u.City, &u.State, &u.ZipCode,
		&u.Gender, &u.DateOfBirth, &u.TermsAccepted, &u.ProfilePictureURL,
		&u.Roles, &u.TwoFactorSecret, &u.TwoFactorEnabled,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if len(u.Roles) == 0 {
		u.Roles = entity.DefaultRoles()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (
			name, email, password_hash, cpf, rg, phone,
			address, number, complement, neighborhood, city, state, zip_code,
			gender, date_of_birth, terms_accepted, profile_picture_url, roles
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.CPF, u.RG, u.Phone,
		u.Address, u.Number, u.Complement, u.Neighborhood, u.City, u.State, u.ZipCode,
		u.Gender, u.DateOfBirth, u.TermsAccepted, u.ProfilePictureURL, u.Roles)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE cpf = $1`, cpf))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) existsBy(ctx context.Context, column, value string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE `+column+` = $1)`, value).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsBy(ctx, "email", email)
}

func (r *UserRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	return r.existsBy(ctx, "cpf", cpf)
}

func (r *UserRepository) ExistsByRG(ctx context.Context, rg string) (bool, error) {
	return r.existsBy(ctx, "rg", rg)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, cpf = $3, rg = $4, phone = $5,
			address = $6, number = $7, complement = $8, neighborhood = $9,
			city = $10, state = $11, zip_code = $12, gender = $13,
			date_of_birth = $14, updated_at = $15
		WHERE id = $16
	`, u.Name, u.Email, u.CPF, u.RG, u.Phone,
		u.Address, u.Number, u.Complement, u.Neighborhood,
		u.City, u.State, u.ZipCode, u.Gender,
		u.DateOfBirth, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.execOnUser(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, id int64, url string) error {
	return r.execOnUser(ctx, `UPDATE users SET profile_picture_url = $1, updated_at = now() WHERE id = $2`, url, id)
}

func (r *UserRepository) SetRoles(ctx context.Context, id int64, roles []string) error {
	return r.execOnUser(ctx, `UPDATE users SET roles = $1, updated_at = now() WHERE id = $2`, roles, id)
}

func (r *UserRepository) SetTwoFactorSecret(ctx context.Context, id int64, secret string) error {
	return r.execOnUser(ctx, `UPDATE users SET two_factor_secret = $1, updated_at = now() WHERE id = $2`, secret, id)
}

func (r *UserRepository) EnableTwoFactor(ctx context.Context, id int64) error {
	return r.execOnUser(ctx, `UPDATE users SET two_factor_enabled = true, updated_at = now() WHERE id = $1`, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.execOnUser(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepository) execOnUser(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
