package models

import "time"

// Family groups users; new members join it with InviteCode.
type Family struct {
	ID         int64
	InviteCode string
	CreatedAt  time.Time
}
