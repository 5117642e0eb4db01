package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/models"
	"github.com/yeojiphap/choki/internal/server/repositories/repomanager"
)

type RouteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRouteService(db *sql.DB, m repomanager.RepositoryManager) *RouteService {
	return &RouteService{db: db, repomanager: m}
}

// SaveGuidedRoute stores a new route owned by the acting user. The route and
// all of its points are written in one transaction.
func (s *RouteService) SaveGuidedRoute(ctx context.Context, actingUserID int64, name string, points []models.Waypoint) (*models.Route, error) {
	route := &models.Route{
		ID:     uuid.New(),
		UserID: actingUserID,
		Name:   name,
		Points: points,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).FindByID(ctx, actingUserID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return fmt.Errorf("error searching user: %w", err)
		}
		if err := s.repomanager.Routes(tx).Create(ctx, route); err != nil {
			return fmt.Errorf("error saving route: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return route, nil
}

// GetRoute returns a route owned by the acting user. Routes of other users
// are reported as common.ErrRouteNotFound.
func (s *RouteService) GetRoute(ctx context.Context, actingUserID int64, id uuid.UUID) (*models.Route, error) {
	route, err := s.repomanager.Routes(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRouteNotFound
		}
		return nil, fmt.Errorf("error searching route: %w", err)
	}
	if route.UserID != actingUserID {
		return nil, common.ErrRouteNotFound
	}
	return route, nil
}
