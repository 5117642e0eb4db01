package models

import (
	"fmt"
	"time"
)

type MissionStatus string

const (
	MissionNotStarted MissionStatus = "NOT_STARTED"
	MissionInProgress MissionStatus = "IN_PROGRESS"
	MissionCompleted  MissionStatus = "COMPLETED"
)

// ParseMissionStatus accepts exactly the three known status names.
func ParseMissionStatus(s string) (MissionStatus, error) {
	switch st := MissionStatus(s); st {
	case MissionNotStarted, MissionInProgress, MissionCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("unknown mission status %q", s)
	}
}

// Mission is a task assigned to a user.
type Mission struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Status    MissionStatus
	CreatedAt time.Time
}
