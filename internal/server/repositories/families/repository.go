package families

import (
	"context"

	"github.com/yeojiphap/choki/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, family *models.Family) (*models.Family, error)
	FindByMemberUserID(ctx context.Context, userID int64) (*models.Family, error)
	FindByInviteCode(ctx context.Context, inviteCode string) (*models.Family, error)
}
