package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/server/models"
)

// Point is a waypoint on the wire.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteRequest is the body of POST /api/route/save.
type RouteRequest struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Waypoints converts the request points keeping their order.
func (r RouteRequest) Waypoints() []models.Waypoint {
	out := make([]models.Waypoint, 0, len(r.Points))
	for _, p := range r.Points {
		out = append(out, models.Waypoint{Latitude: p.Lat, Longitude: p.Lng})
	}
	return out
}

type RouteResponse struct {
	RouteID   uuid.UUID `json:"routeId"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Points    []Point   `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewRouteResponse(route *models.Route) RouteResponse {
	points := make([]Point, 0, len(route.Points))
	for _, p := range route.Points {
		points = append(points, Point{Lat: p.Latitude, Lng: p.Longitude})
	}
	return RouteResponse{
		RouteID:   route.ID,
		UserID:    route.UserID,
		Name:      route.Name,
		Points:    points,
		CreatedAt: route.CreatedAt,
	}
}
