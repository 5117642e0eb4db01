package missions

import (
	"context"

	"github.com/yeojiphap/choki/internal/server/models"
)

type Repository interface {
	FindByUserIDAndStatus(ctx context.Context, userID int64, status models.MissionStatus) ([]*models.Mission, error)
}
