package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/server/dto"
	"github.com/yeojiphap/choki/internal/server/models"
)

const (
	maxBodyBytes   = 1 << 20
	maxRoutePoints = 1000
)

type joinFamilyRequest struct {
	InviteCode string `json:"inviteCode"`
}

type gainExpRequest struct {
	Amount int `json:"amount"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrorValidation)
	}
	return nil
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "OK", nil)
}

func (s *HTTPServer) createFamily(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	code, err := s.families.CreateFamily(r.Context(), actingUserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "family created", "user_id", actingUserID)
	writeJSON(w, http.StatusCreated, "family created", dto.InviteCodeResponse{InviteCode: code})
}

func (s *HTTPServer) getInviteCode(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	code, err := s.families.GetInviteCode(r.Context(), actingUserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "invite code found", dto.InviteCodeResponse{InviteCode: code})
}

func (s *HTTPServer) joinFamily(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	var req joinFamilyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.InviteCode == "" {
		s.writeError(w, r, fmt.Errorf("%w: inviteCode is required", common.ErrorValidation))
		return
	}

	code, err := s.families.JoinFamily(r.Context(), actingUserID, req.InviteCode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "joined family", dto.InviteCodeResponse{InviteCode: code})
}

func (s *HTTPServer) getInProgressMissions(w http.ResponseWriter, r *http.Request) {
	s.listMissions(w, r, models.MissionInProgress)
}

func (s *HTTPServer) getMissions(w http.ResponseWriter, r *http.Request) {
	status, err := models.ParseMissionStatus(r.URL.Query().Get("status"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %s", common.ErrUnknownMission, err))
		return
	}
	s.listMissions(w, r, status)
}

func (s *HTTPServer) listMissions(w http.ResponseWriter, r *http.Request, status models.MissionStatus) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		s.writeError(w, r, fmt.Errorf("%w: userId must be a positive integer", common.ErrorValidation))
		return
	}

	missions, err := s.missions.GetMissions(r.Context(), userID, status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "missions found", dto.NewMissionResponses(missions))
}

func (s *HTTPServer) saveRoute(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	var req dto.RouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateRoute(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	route, err := s.routes.SaveGuidedRoute(r.Context(), actingUserID, req.Name, req.Waypoints())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "route saved", "route_id", route.ID.String(), "points", len(route.Points))
	writeJSON(w, http.StatusCreated, "route saved", nil)
}

func validateRoute(req dto.RouteRequest) error {
	if len(req.Points) == 0 {
		return fmt.Errorf("%w: route needs at least one point", common.ErrorValidation)
	}
	if len(req.Points) > maxRoutePoints {
		return fmt.Errorf("%w: route has more than %d points", common.ErrorValidation, maxRoutePoints)
	}
	for i, p := range req.Points {
		if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
			return fmt.Errorf("%w: point %d out of range", common.ErrorValidation, i)
		}
	}
	return nil
}

func (s *HTTPServer) getRoute(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	id, err := uuid.Parse(r.PathValue("routeId"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed route id", common.ErrorValidation))
		return
	}

	route, err := s.routes.GetRoute(r.Context(), actingUserID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "route found", dto.NewRouteResponse(route))
}

func (s *HTTPServer) getProfile(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	user, err := s.users.GetProfile(r.Context(), actingUserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "user found", user)
}

func (s *HTTPServer) gainExperience(w http.ResponseWriter, r *http.Request, actingUserID int64) {
	var req gainExpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.GainExperience(r.Context(), actingUserID, req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "experience gained", user)
}
