package application

import (
	"context"
	"sync"

	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	"github.com/cadastrolabs/cadastro-api/internal/domain/repository"
)

// fakeRepo is an in-memory UserRepository for service tests.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (r *fakeRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) GetByCPF(_ context.Context, cpf string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CPF == cpf {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *fakeRepo) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	u, _ := r.GetByCPF(ctx, cpf)
	return u != nil, nil
}

func (r *fakeRepo) ExistsByRG(_ context.Context, rg string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RG == rg {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	return r.mutate(id, func(u *entity.User) { u.Password = hash })
}

func (r *fakeRepo) SetProfilePicture(_ context.Context, id int64, url string) error {
	return r.mutate(id, func(u *entity.User) { u.ProfilePictureURL = url })
}

func (r *fakeRepo) SetRoles(_ context.Context, id int64, roles []string) error {
	return r.mutate(id, func(u *entity.User) { u.Roles = roles })
}

func (r *fakeRepo) SetTwoFactorSecret(_ context.Context, id int64, secret string) error {
	return r.mutate(id, func(u *entity.User) { u.TwoFactorSecret = secret })
}

func (r *fakeRepo) EnableTwoFactor(_ context.Context, id int64) error {
	return r.mutate(id, func(u *entity.User) { u.TwoFactorEnabled = true })
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) mutate(id int64, fn func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	return nil
}

// brokenRepo simulates a storage outage: every read fails with the wrapped
// transport error.
type brokenRepo struct {
	*fakeRepo
	err error
}

func (r *brokenRepo) GetByID(context.Context, int64) (*entity.User, error) {
	return nil, r.err
}

func (r *brokenRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}

func (r *brokenRepo) GetByCPF(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
