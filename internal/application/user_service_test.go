package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
)

func seedUser(t *testing.T, repo *fakeRepo, email, cpf, rg string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword("Str0ngPass!")
	require.NoError(t, err)
	u := &entity.User{
		Name:          "Seed User",
		Email:         email,
		Password:      hash,
		CPF:           cpf,
		RG:            rg,
		State:         "SP",
		ZipCode:       "01001000",
		Gender:        "other",
		DateOfBirth:   time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
		TermsAccepted: true,
		Roles:         entity.DefaultRoles(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserLookups(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, nil, "", nil)
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "52998224725", "rg-1")

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	got, err = svc.GetByCPF(ctx, "52998224725")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = svc.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetByCPF(ctx, "12345678909")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserLookupsSurfaceStorageFailure(t *testing.T) {
	dbErr := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	svc := NewUserService(&brokenRepo{fakeRepo: newFakeRepo(), err: dbErr}, nil, "", nil)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetByCPF(ctx, "52998224725")
	assert.ErrorIs(t, err, dbErr)

	err = svc.UpdatePassword(ctx, 1, "a", "b12345678")
	assert.ErrorIs(t, err, dbErr)
}

func TestUserListPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, nil, "", nil)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedUser(t, repo,
			fmt.Sprintf("user%d@example.com", i),
			fmt.Sprintf("cpf-%02d", i),
			fmt.Sprintf("rg-%02d", i))
	}

	users, total, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, int64(25), total)

	users, _, err = svc.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	// Out-of-range size falls back to the default page size
	users, _, err = svc.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, users, 20)

	users, _, err = svc.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, nil, "", nil)
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "52998224725", "rg-1")
	seedUser(t, repo, "b@example.com", "12345678909", "rg-2")

	got, err := svc.Update(ctx, u.ID, UpdateInput{Name: "Renamed", City: "Campinas"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "Campinas", got.City)
	assert.Equal(t, "a@example.com", got.Email, "empty fields stay untouched")

	_, err = svc.Update(ctx, u.ID, UpdateInput{Email: "b@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Update(ctx, u.ID, UpdateInput{CPF: "12345678909"})
	assert.ErrorIs(t, err, ErrDuplicateCPF)

	// Re-submitting your own email is not a collision
	got, err = svc.Update(ctx, u.ID, UpdateInput{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = svc.Update(ctx, 999, UpdateInput{Name: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdatePassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, nil, "", nil)
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "52998224725", "rg-1")

	err := svc.UpdatePassword(ctx, u.ID, "wrong-current", "N3wPassword!")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	require.NoError(t, svc.UpdatePassword(ctx, u.ID, "Str0ngPass!", "N3wPassword!"))

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "N3wPassword!"))
	assert.False(t, helpers.CompareHashAndPassword(stored.Password, "Str0ngPass!"))

	err = svc.UpdatePassword(ctx, 999, "x", "y")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, nil, "", nil)
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "52998224725", "rg-1")

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err := svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrUserNotFound)
}

func TestPromoteToAdminIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, nil, "", nil)
	ctx := context.Background()

	u := seedUser(t, repo, "a@example.com", "52998224725", "rg-1")

	got, err := svc.PromoteToAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleUser, entity.RoleAdmin}, got.Roles)

	got, err = svc.PromoteToAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleUser, entity.RoleAdmin}, got.Roles)

	_, err = svc.PromoteToAdmin(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
