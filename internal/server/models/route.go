package models

import (
	"time"

	"github.com/google/uuid"
)

// Waypoint is a single coordinate on a route.
type Waypoint struct {
	Latitude  float64
	Longitude float64
}

// Route is an ordered, immutable list of waypoints saved for a user so a
// child can rehearse the path before walking it.
type Route struct {
	ID        uuid.UUID
	UserID    int64
	Name      string
	Points    []Waypoint
	CreatedAt time.Time
}
