package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/logging"
	"github.com/yeojiphap/choki/internal/server/auth"
	"github.com/yeojiphap/choki/internal/server/dto"
	"github.com/yeojiphap/choki/internal/server/models"
)

const testSecret = "k"

type fakeFamilies struct {
	code    string
	err     error
	gotUser int64
	gotCode string
}

func (f *fakeFamilies) CreateFamily(ctx context.Context, actingUserID int64) (string, error) {
	f.gotUser = actingUserID
	return f.code, f.err
}

func (f *fakeFamilies) GetInviteCode(ctx context.Context, actingUserID int64) (string, error) {
	f.gotUser = actingUserID
	return f.code, f.err
}

func (f *fakeFamilies) JoinFamily(ctx context.Context, actingUserID int64, inviteCode string) (string, error) {
	f.gotUser = actingUserID
	f.gotCode = inviteCode
	return inviteCode, f.err
}

type fakeMissions struct {
	missions  []*models.Mission
	err       error
	gotUser   int64
	gotStatus models.MissionStatus
}

func (f *fakeMissions) GetMissions(ctx context.Context, userID int64, status models.MissionStatus) ([]*models.Mission, error) {
	f.gotUser = userID
	f.gotStatus = status
	return f.missions, f.err
}

type fakeRoutes struct {
	route     *models.Route
	err       error
	gotUser   int64
	gotName   string
	gotPoints []models.Waypoint
}

func (f *fakeRoutes) SaveGuidedRoute(ctx context.Context, actingUserID int64, name string, points []models.Waypoint) (*models.Route, error) {
	f.gotUser = actingUserID
	f.gotName = name
	f.gotPoints = points
	if f.err != nil {
		return nil, f.err
	}
	return &models.Route{ID: uuid.New(), UserID: actingUserID, Name: name, Points: points}, nil
}

func (f *fakeRoutes) GetRoute(ctx context.Context, actingUserID int64, id uuid.UUID) (*models.Route, error) {
	f.gotUser = actingUserID
	return f.route, f.err
}

type fakeUsers struct {
	resp    *dto.UserResponse
	err     error
	gotUser int64
	gotExp  int
}

func (f *fakeUsers) GetProfile(ctx context.Context, actingUserID int64) (*dto.UserResponse, error) {
	f.gotUser = actingUserID
	return f.resp, f.err
}

func (f *fakeUsers) GainExperience(ctx context.Context, actingUserID int64, amount int) (*dto.UserResponse, error) {
	f.gotUser = actingUserID
	f.gotExp = amount
	return f.resp, f.err
}

func newTestServer(svc Services) *HTTPServer {
	if svc.Families == nil {
		svc.Families = &fakeFamilies{}
	}
	if svc.Missions == nil {
		svc.Missions = &fakeMissions{}
	}
	if svc.Routes == nil {
		svc.Routes = &fakeRoutes{}
	}
	if svc.Users == nil {
		svc.Users = &fakeUsers{}
	}
	return NewHTTPServer("127.0.0.1:0", logging.Nop(), svc, testSecret, time.Second, time.Second)
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return "Bearer " + tok
}
