package repository

import (
	"context"

	"bookbazaar/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
}
