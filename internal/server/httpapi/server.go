// Package httpapi exposes the choki services as a JSON REST API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/logging"
	"github.com/yeojiphap/choki/internal/server/dto"
	"github.com/yeojiphap/choki/internal/server/models"
)

type FamilyService interface {
	CreateFamily(ctx context.Context, actingUserID int64) (string, error)
	GetInviteCode(ctx context.Context, actingUserID int64) (string, error)
	JoinFamily(ctx context.Context, actingUserID int64, inviteCode string) (string, error)
}

type MissionService interface {
	GetMissions(ctx context.Context, userID int64, status models.MissionStatus) ([]*models.Mission, error)
}

type RouteService interface {
	SaveGuidedRoute(ctx context.Context, actingUserID int64, name string, points []models.Waypoint) (*models.Route, error)
	GetRoute(ctx context.Context, actingUserID int64, id uuid.UUID) (*models.Route, error)
}

type UserService interface {
	GetProfile(ctx context.Context, actingUserID int64) (*dto.UserResponse, error)
	GainExperience(ctx context.Context, actingUserID int64, amount int) (*dto.UserResponse, error)
}

// Services groups the business services the API delegates to.
type Services struct {
	Families FamilyService
	Missions MissionService
	Routes   RouteService
	Users    UserService
}

type HTTPServer struct {
	address           string
	logger            logging.Logger
	families          FamilyService
	missions          MissionService
	routes            RouteService
	users             UserService
	jwtSecret         []byte
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

func NewHTTPServer(a string, l logging.Logger, svc Services, secretKey string, readHeaderTimeout, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:           a,
		logger:            l.With("module", "http_server"),
		families:          svc.Families,
		missions:          svc.Missions,
		routes:            svc.Routes,
		users:             svc.Users,
		jwtSecret:         []byte(secretKey),
		readHeaderTimeout: readHeaderTimeout,
		shutdownTimeout:   shutdownTimeout,
	}
}

// Handler returns the full route table wrapped in the request-id, tracing
// and access-log middleware.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", s.ping)

	mux.Handle("POST /api/family", s.requireUser(s.createFamily))
	mux.Handle("GET /api/family/inviteCode", s.requireUser(s.getInviteCode))
	mux.Handle("POST /api/family/join", s.requireUser(s.joinFamily))

	mux.HandleFunc("GET /api/mission/inProgress", s.getInProgressMissions)
	mux.HandleFunc("GET /api/mission", s.getMissions)

	mux.Handle("POST /api/route/save", s.requireUser(s.saveRoute))
	mux.Handle("GET /api/route/{routeId}", s.requireUser(s.getRoute))

	mux.Handle("GET /api/user/me", s.requireUser(s.getProfile))
	mux.Handle("POST /api/user/exp", s.requireUser(s.gainExperience))

	return s.withRequestID(s.traced(s.accessLog(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
