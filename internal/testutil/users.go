// Package testutil implementaciones en memoria de los puertos de repositorio para
// los tests de casos de uso y handlers.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacén de principales en memoria. Err, si no es nil, lo devuelve cada llamada.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	Err   error
}

// NewUserRepo construye el almacén con los usuarios dados.
func NewUserRepo(users ...*entity.User) *UserRepo {
	r := &UserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if !u.Role.Valid() {
		return domain.ErrValidation
	}
	for _, o := range r.users {
		if o.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if o.UserName == u.UserName {
			return domain.ErrUserNameAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.UserName == userName })
}

func (r *UserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if !u.Role.Valid() {
		return domain.ErrValidation
	}
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, o := range r.users {
		if o.ID == u.ID {
			continue
		}
		if o.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if o.UserName == u.UserName {
			return domain.ErrUserNameAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id string, role authz.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if !role.Valid() {
		return domain.ErrValidation
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var all []*entity.User
	search := strings.ToLower(f.Search)
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.UserName+" "+u.FirstName+" "+u.LastName+" "+u.Email), search) {
			continue
		}
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserName < all[j].UserName })
	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], total, nil
}
