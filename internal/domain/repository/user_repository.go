package repository

import (
	"context"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListActiveByRole(ctx context.Context, role string) ([]*entity.User, error)
}
