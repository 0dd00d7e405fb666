package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	repo "github.com/cadastrolabs/cadastro-api/internal/domain/repository"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
)

// UserService covers the CRUD surface: lookups, paged listing, profile
// update, password change, deletion, admin promotion and profile picture
// upload.
type UserService struct {
	Repo      repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(r repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// asUserNotFound maps the repository's missing-row result onto the service
// sentinel and passes storage faults through untouched.
func asUserNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asUserNotFound(err)
	}
	return u, nil
}

func (s *UserService) GetByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	u, err := s.Repo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, asUserNotFound(err)
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, asUserNotFound(err)
	}
	return u, nil
}

// List returns one page of users plus the total count.
func (s *UserService) List(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	users, err := s.Repo.List(ctx, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateInput carries the mutable profile fields. Empty strings leave the
// current value untouched.
type UpdateInput struct {
	Name         string
	Email        string
	CPF          string
	RG           string
	Phone        string
	Address      string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
	Gender       string
}

// Update mutates a profile, re-checking that a changed email or CPF does
// not collide with another record before anything is written.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asUserNotFound(err)
	}

	if in.Email != "" && in.Email != u.Email {
		other, err := s.Repo.GetByEmail(ctx, in.Email)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrDuplicateEmail
		}
		u.Email = in.Email
	}
	if in.CPF != "" && in.CPF != u.CPF {
		other, err := s.Repo.GetByCPF(ctx, in.CPF)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrDuplicateCPF
		}
		u.CPF = in.CPF
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.RG != "" {
		u.RG = in.RG
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.Number != "" {
		u.Number = in.Number
	}
	if in.Complement != "" {
		u.Complement = in.Complement
	}
	if in.Neighborhood != "" {
		u.Neighborhood = in.Neighborhood
	}
	if in.City != "" {
		u.City = in.City
	}
	if in.State != "" {
		u.State = in.State
	}
	if in.ZipCode != "" {
		u.ZipCode = in.ZipCode
	}
	if in.Gender != "" {
		u.Gender = in.Gender
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword verifies the current password before storing the new hash.
func (s *UserService) UpdatePassword(ctx context.Context, id int64, current, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return asUserNotFound(err)
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return ErrIncorrectPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, id, hash)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return asUserNotFound(err)
	}
	return nil
}

// PromoteToAdmin grants the ADMIN role. Idempotent: promoting an admin
// again changes nothing.
func (s *UserService) PromoteToAdmin(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asUserNotFound(err)
	}
	if u.HasRole(entity.RoleAdmin) {
		return u, nil
	}
	roles := append(u.Roles, entity.RoleAdmin)
	if err := s.Repo.SetRoles(ctx, id, roles); err != nil {
		return nil, err
	}
	u.Roles = roles
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "email": u.Email}).Info("user promoted to admin")
	}
	return u, nil
}

// UploadProfilePicture stores the image in object storage and records its
// public URL on the user.
func (s *UserService) UploadProfilePicture(ctx context.Context, id int64, r io.Reader, filename, contentType string) (string, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return "", asUserNotFound(err)
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetProfilePicture(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}
