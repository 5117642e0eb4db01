package models

import "time"

// Collected records that a user has unlocked an animal.
type Collected struct {
	ID          int64
	UserID      int64
	AnimalID    int64
	CollectedAt time.Time
}
