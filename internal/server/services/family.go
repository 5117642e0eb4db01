// Package services contains server-side business logic. Every operation
// takes the acting user's id explicitly; nothing is read from ambient state.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/invitecode"
	"github.com/yeojiphap/choki/internal/server/models"
	"github.com/yeojiphap/choki/internal/server/repositories/repomanager"
	"github.com/yeojiphap/choki/internal/server/repositories/users"
)

// FamilyService creates families, hands out their invite codes and lets
// users join them.
type FamilyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      invitecode.Issuer
}

func NewFamilyService(db *sql.DB, m repomanager.RepositoryManager, issuer invitecode.Issuer) *FamilyService {
	return &FamilyService{db: db, repomanager: m, issuer: issuer}
}

// CreateFamily creates a family with a fresh invite code and makes the acting
// user its first member. The user row is locked for the duration, so a user
// who already has a family gets common.ErrAlreadyInFamily instead of a second
// family, even under concurrent calls.
func (s *FamilyService) CreateFamily(ctx context.Context, actingUserID int64) (string, error) {
	var inviteCode string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repomanager.Users(tx)

		user, err := lockUser(ctx, userRepo, actingUserID)
		if err != nil {
			return err
		}
		if user.Family.Valid {
			return common.ErrAlreadyInFamily
		}

		code, err := s.issuer.Issue()
		if err != nil {
			return fmt.Errorf("error issuing invite code: %w", err)
		}

		family, err := s.repomanager.Families(tx).Create(ctx, &models.Family{InviteCode: code})
		if err != nil {
			if errors.Is(err, common.ErrInviteCodeTaken) {
				return err
			}
			return fmt.Errorf("error creating family: %w", err)
		}

		user.AssignFamily(family)
		if _, err := userRepo.Save(ctx, user); err != nil {
			return fmt.Errorf("error saving user: %w", err)
		}

		inviteCode = family.InviteCode
		return nil
	})
	if err != nil {
		return "", err
	}

	return inviteCode, nil
}

// GetInviteCode returns the invite code of the acting user's family, or
// common.ErrFamilyNotFound when the user has none.
func (s *FamilyService) GetInviteCode(ctx context.Context, actingUserID int64) (string, error) {
	family, err := s.repomanager.Families(s.db).FindByMemberUserID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrFamilyNotFound
		}
		return "", fmt.Errorf("error searching family: %w", err)
	}
	return family.InviteCode, nil
}

// JoinFamily attaches the acting user to the family identified by inviteCode
// and returns that code.
func (s *FamilyService) JoinFamily(ctx context.Context, actingUserID int64, inviteCode string) (string, error) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repomanager.Users(tx)

		user, err := lockUser(ctx, userRepo, actingUserID)
		if err != nil {
			return err
		}
		if user.Family.Valid {
			return common.ErrAlreadyInFamily
		}

		family, err := s.repomanager.Families(tx).FindByInviteCode(ctx, inviteCode)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrFamilyNotFound
			}
			return fmt.Errorf("error searching family: %w", err)
		}

		user.AssignFamily(family)
		if _, err := userRepo.Save(ctx, user); err != nil {
			return fmt.Errorf("error saving user: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return inviteCode, nil
}

func lockUser(ctx context.Context, repo users.Repository, id int64) (*models.User, error) {
	user, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}
