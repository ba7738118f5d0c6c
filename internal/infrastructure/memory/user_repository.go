package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.do(false, func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		c := *u
		st.users[u.ID] = &c
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) ListActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	_ = r.s.do(false, func(st *state) error {
		for _, u := range st.users {
			if u.Activo && u.Role == role {
				c := *u
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepo) find(match func(u *entity.User) bool) *entity.User {
	var out *entity.User
	_ = r.s.do(false, func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return out
}
