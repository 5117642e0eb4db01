package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/server/models"
)

func TestGetProfile(t *testing.T) {
	store := newMemStore()
	u := models.User{ID: 7, Nickname: "hero", Role: models.RoleParent, Level: 2, Exp: 30}
	u.AssignFamily(&models.Family{ID: 3, InviteCode: "AB12CD"})
	store.addUser(u)
	store.collected = []*models.Collected{{UserID: 7, AnimalID: 5}, {UserID: 8, AnimalID: 6}, {UserID: 7, AnimalID: 1}}
	db, _ := newTxDB(t)
	s := NewUserService(db, memManager{store})

	got, err := s.GetProfile(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, []int64{5, 1}, got.Animals)
	require.NotNil(t, got.InviteCode)
	assert.Equal(t, "AB12CD", *got.InviteCode)
	assert.False(t, got.IsLevelUp)
}

func TestGetProfile_Errors(t *testing.T) {
	store := newMemStore()
	db, _ := newTxDB(t)
	s := NewUserService(db, memManager{store})

	_, err := s.GetProfile(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrUserNotFound)

	store.addUser(models.User{ID: 7, Role: models.RoleChild, Level: 1})
	store.fail["collected.find"] = errors.New("db down")
	_, err = s.GetProfile(context.Background(), 7)
	assert.ErrorContains(t, err, "db down")
}

func TestGainExperience(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{ID: 7, Role: models.RoleChild, Level: 1, Exp: 80})
	db, mock := newTxDB(t, true, true)
	s := NewUserService(db, memManager{store})

	got, err := s.GainExperience(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.False(t, got.IsLevelUp)
	assert.Equal(t, 90, got.Exp)

	got, err = s.GainExperience(context.Background(), 7, 30)
	require.NoError(t, err)
	assert.True(t, got.IsLevelUp)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 20, got.Exp)

	assert.Equal(t, 2, store.user(7).Level)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGainExperience_Invalid(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{ID: 7, Role: models.RoleChild, Level: 1, Exp: 50})
	db, mock := newTxDB(t)
	s := NewUserService(db, memManager{store})

	for _, amount := range []int{0, -5, models.MaxExpGain + 1, math.MaxInt} {
		_, err := s.GainExperience(context.Background(), 7, amount)
		assert.ErrorIs(t, err, common.ErrInvalidExpAmount, "amount %d", amount)
	}
	assert.Equal(t, 50, store.user(7).Exp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGainExperience_MaxAmount(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{ID: 7, Role: models.RoleChild, Level: 1, Exp: 0})
	db, _ := newTxDB(t, true)
	s := NewUserService(db, memManager{store})

	got, err := s.GainExperience(context.Background(), 7, models.MaxExpGain)
	require.NoError(t, err)
	assert.True(t, got.IsLevelUp)
	assert.GreaterOrEqual(t, got.Exp, 0)
	assert.Less(t, got.Exp, models.LevelUpThreshold(got.Level))
}

func TestGainExperience_UserNotFound(t *testing.T) {
	db, mock := newTxDB(t, false)
	s := NewUserService(db, memManager{newMemStore()})

	_, err := s.GainExperience(context.Background(), 7, 10)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
