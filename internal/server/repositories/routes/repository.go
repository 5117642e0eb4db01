package routes

import (
	"context"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/server/models"
)

type Repository interface {
	// Create stores the route header and its points. Callers run it inside a
	// transaction so a route is never visible without all of its points.
	Create(ctx context.Context, route *models.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Route, error)
}
