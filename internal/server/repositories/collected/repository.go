package collected

import (
	"context"

	"github.com/yeojiphap/choki/internal/server/models"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID int64) ([]*models.Collected, error)
}
