package users

import (
	"context"

	"github.com/yeojiphap/choki/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// FindByIDForUpdate locks the user row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
}
