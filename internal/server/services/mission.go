package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yeojiphap/choki/internal/server/models"
	"github.com/yeojiphap/choki/internal/server/repositories/repomanager"
)

type MissionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMissionService(db *sql.DB, m repomanager.RepositoryManager) *MissionService {
	return &MissionService{db: db, repomanager: m}
}

// GetMissions lists userID's missions with the given status. A user with no
// matching missions gets an empty slice, not an error.
func (s *MissionService) GetMissions(ctx context.Context, userID int64, status models.MissionStatus) ([]*models.Mission, error) {
	missions, err := s.repomanager.Missions(s.db).FindByUserIDAndStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("error searching missions: %w", err)
	}
	if missions == nil {
		missions = []*models.Mission{}
	}
	return missions, nil
}
