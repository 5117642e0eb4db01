// Package users provides the PostgreSQL-backed user directory.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `SELECT u.id, u.user_id, u.nickname, u.name, u.tel, u.address, u.role,
		u.level, u.exp, u.family_id, f.invite_code, u.main_animal_id
	FROM users u
	LEFT JOIN families f ON f.id = u.family_id
	WHERE u.id = $1`

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.find(ctx, selectUser, id)
}

func (r *PostgresRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.find(ctx, selectUser+` FOR UPDATE OF u`, id)
}

func (r *PostgresRepository) find(ctx context.Context, query string, id int64) (*models.User, error) {
	var (
		user       models.User
		role       string
		familyID   sql.Null[int64]
		inviteCode sql.Null[string]
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.UserID, &user.Nickname, &user.Name, &user.Tel, &user.Address, &role,
		&user.Level, &user.Exp, &familyID, &inviteCode, &user.MainAnimalID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Role, err = models.ParseRole(role); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if familyID.Valid {
		user.Family.Valid = true
		user.Family.V = models.FamilyRef{ID: familyID.V, InviteCode: inviteCode.V}
	}

	return &user, nil
}

// Save inserts the user when ID is zero and updates it otherwise.
func (r *PostgresRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	familyID := sql.Null[int64]{V: user.Family.V.ID, Valid: user.Family.Valid}

	if user.ID == 0 {
		query :=
			`INSERT INTO users (user_id, nickname, name, tel, address, role, level, exp, family_id, main_animal_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id`

		err := r.db.QueryRowContext(ctx, query,
			user.UserID, user.Nickname, user.Name, user.Tel, user.Address, string(user.Role),
			user.Level, user.Exp, familyID, user.MainAnimalID,
		).Scan(&user.ID)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		return user, nil
	}

	query :=
		`UPDATE users SET nickname = $2, name = $3, tel = $4, address = $5, role = $6,
			level = $7, exp = $8, family_id = $9, main_animal_id = $10
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Nickname, user.Name, user.Tel, user.Address, string(user.Role),
		user.Level, user.Exp, familyID, user.MainAnimalID,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return user, nil
}
