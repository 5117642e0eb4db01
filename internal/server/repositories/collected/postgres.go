// Package collected reads the animals each user has unlocked.
package collected

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

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Collected, error) {
	query :=
		`SELECT id, user_id, animal_id, collected_at
		 FROM collected
		 WHERE user_id = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Collected, 0)
	for rows.Next() {
		var item models.Collected
		if err := rows.Scan(&item.ID, &item.UserID, &item.AnimalID, &item.CollectedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
