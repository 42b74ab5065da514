package repository

import (
	"context"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// UserRepository define o porto de persistência de usuários.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
