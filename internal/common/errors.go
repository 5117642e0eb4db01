// Package common defines shared constants and sentinel errors used across
// the choki server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// User and family errors.
	ErrUserNotFound     = errors.New("user not found")
	ErrFamilyNotFound   = errors.New("family not found")
	ErrAlreadyInFamily  = errors.New("user already belongs to a family")
	ErrInviteCodeTaken  = errors.New("invite code already taken")
	ErrRouteNotFound    = errors.New("route not found")
	ErrUnknownMission   = errors.New("unknown mission status")
	ErrInvalidExpAmount = errors.New("experience amount must be between 1 and 1000000")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
