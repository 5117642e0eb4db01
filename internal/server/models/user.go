// Package models defines server-side data models persisted in the database.
package models

import (
	"database/sql"
	"fmt"
)

// Role distinguishes the two kinds of account.
type Role string

const (
	RoleParent Role = "PARENT"
	RoleChild  Role = "CHILD"
)

// ParseRole validates a stored or submitted role value.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleParent, RoleChild:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// FamilyRef is the part of a Family a user row carries.
type FamilyRef struct {
	ID         int64
	InviteCode string
}

// User is an account. A user belongs to at most one family; Family.Valid is
// false when it belongs to none.
type User struct {
	ID       int64
	UserID   string
	Nickname string
	Name     string
	Tel      string
	Address  string
	Role     Role
	Level    int
	Exp      int

	Family       sql.Null[FamilyRef]
	MainAnimalID sql.Null[int64]
}

// AssignFamily points the user at f, replacing any previous family.
func (u *User) AssignFamily(f *Family) {
	u.Family = sql.Null[FamilyRef]{V: FamilyRef{ID: f.ID, InviteCode: f.InviteCode}, Valid: true}
}

// MaxExpGain caps a single experience award. It keeps Exp and Level well
// inside the INTEGER columns and bounds the level-up loop.
const MaxExpGain = 1_000_000

// LevelUpThreshold is the experience needed to leave the given level.
func LevelUpThreshold(level int) int {
	return level * 100
}

// GainExp adds amount to the user's experience and promotes the user for
// every threshold crossed. It reports whether at least one level was gained.
func (u *User) GainExp(amount int) bool {
	u.Exp += amount
	leveled := false
	for u.Exp >= LevelUpThreshold(u.Level) {
		u.Exp -= LevelUpThreshold(u.Level)
		u.Level++
		leveled = true
	}
	return leveled
}
