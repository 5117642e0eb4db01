// Package routes persists guided routes and their ordered waypoints.
package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, route *models.Route) error {
	query :=
		`INSERT INTO routes (id, user_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, route.ID, route.UserID, route.Name).Scan(&route.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	pointQuery :=
		`INSERT INTO route_points (route_id, seq, latitude, longitude)
		 VALUES ($1, $2, $3, $4)`

	for i, p := range route.Points {
		if _, err := r.db.ExecContext(ctx, pointQuery, route.ID, i, p.Latitude, p.Longitude); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

// FindByID loads a route with its points in saved order.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	query :=
		`SELECT id, user_id, name, created_at
		 FROM routes
		 WHERE id = $1`

	route := &models.Route{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&route.ID, &route.UserID, &route.Name, &route.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	pointQuery :=
		`SELECT latitude, longitude
		 FROM route_points
		 WHERE route_id = $1
		 ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, pointQuery, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	route.Points = make([]models.Waypoint, 0)
	for rows.Next() {
		var p models.Waypoint
		if err := rows.Scan(&p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		route.Points = append(route.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return route, nil
}
