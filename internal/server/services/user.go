package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/dto"
	"github.com/yeojiphap/choki/internal/server/models"
	"github.com/yeojiphap/choki/internal/server/repositories/repomanager"
)

// UserService exposes the acting user's profile and progress.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// GetProfile assembles the acting user's response, including the ids of the
// animals they have collected.
func (s *UserService) GetProfile(ctx context.Context, actingUserID int64) (*dto.UserResponse, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return s.assemble(ctx, s.db, user, false)
}

// GainExperience adds amount to the acting user's experience, promoting them
// as many levels as the total allows. The response reports whether any
// level was gained.
func (s *UserService) GainExperience(ctx context.Context, actingUserID int64, amount int) (*dto.UserResponse, error) {
	if amount <= 0 || amount > models.MaxExpGain {
		return nil, common.ErrInvalidExpAmount
	}

	var resp *dto.UserResponse
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repomanager.Users(tx)

		user, err := lockUser(ctx, userRepo, actingUserID)
		if err != nil {
			return err
		}

		leveledUp := user.GainExp(amount)
		if _, err := userRepo.Save(ctx, user); err != nil {
			return fmt.Errorf("error saving user: %w", err)
		}

		resp, err = s.assemble(ctx, tx, user, leveledUp)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *UserService) assemble(ctx context.Context, db dbx.DBTX, user *models.User, isLevelUp bool) (*dto.UserResponse, error) {
	collected, err := s.repomanager.Collected(db).FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error searching collected animals: %w", err)
	}
	resp := dto.NewUserResponse(user, collected, isLevelUp)
	return &resp, nil
}
