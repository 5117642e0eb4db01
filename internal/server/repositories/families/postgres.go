// Package families provides the PostgreSQL-backed family registry.
package families

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/models"
)

// inviteCodeConstraint names the UNIQUE constraint on families.invite_code.
const inviteCodeConstraint = "families_invite_code_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create stores a family and fills in its id and creation time. A duplicate
// invite code yields common.ErrInviteCodeTaken.
func (r *PostgresRepository) Create(ctx context.Context, family *models.Family) (*models.Family, error) {
	query :=
		`INSERT INTO families (invite_code)
		 VALUES ($1)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, family.InviteCode).Scan(&family.ID, &family.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, inviteCodeConstraint) {
			return nil, common.ErrInviteCodeTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return family, nil
}

// FindByMemberUserID returns the family the given user belongs to.
func (r *PostgresRepository) FindByMemberUserID(ctx context.Context, userID int64) (*models.Family, error) {
	query :=
		`SELECT f.id, f.invite_code, f.created_at
		 FROM families f
		 JOIN users u ON u.family_id = f.id
		 WHERE u.id = $1`

	return r.findOne(ctx, query, userID)
}

func (r *PostgresRepository) FindByInviteCode(ctx context.Context, inviteCode string) (*models.Family, error) {
	query :=
		`SELECT id, invite_code, created_at
		 FROM families
		 WHERE invite_code = $1`

	return r.findOne(ctx, query, inviteCode)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.Family, error) {
	family := &models.Family{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&family.ID, &family.InviteCode, &family.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return family, nil
}
