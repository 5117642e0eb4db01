// Package missions provides read access to the missions assigned to users.
package missions

import (
	"context"
	"fmt"

	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByUserIDAndStatus returns the user's missions with the given status in
// insertion order. No match yields an empty, non-nil slice.
func (r *PostgresRepository) FindByUserIDAndStatus(ctx context.Context, userID int64, status models.MissionStatus) ([]*models.Mission, error) {
	query :=
		`SELECT id, user_id, title, content, status, created_at
		 FROM missions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Mission, 0)
	for rows.Next() {
		var (
			item models.Mission
			st   string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Content, &st, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if item.Status, err = models.ParseMissionStatus(st); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
