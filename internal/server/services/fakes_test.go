package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/yeojiphap/choki/internal/common"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/models"
	"github.com/yeojiphap/choki/internal/server/repositories/collected"
	"github.com/yeojiphap/choki/internal/server/repositories/families"
	"github.com/yeojiphap/choki/internal/server/repositories/missions"
	"github.com/yeojiphap/choki/internal/server/repositories/routes"
	"github.com/yeojiphap/choki/internal/server/repositories/users"
)

// --- helpers ---

// newTxDB returns a sqlmock-backed *sql.DB; each entry of outcomes adds one
// expected transaction that either commits (true) or rolls back (false).
func newTxDB(t *testing.T, outcomes ...bool) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	for _, commit := range outcomes {
		mock.ExpectBegin()
		if commit {
			mock.ExpectCommit()
		} else {
			mock.ExpectRollback()
		}
	}
	return db, mock
}

// --- in-memory store ---

type memStore struct {
	mu        sync.Mutex
	users     map[int64]models.User
	families  map[int64]models.Family
	missions  []*models.Mission
	collected []*models.Collected
	routes    map[uuid.UUID]models.Route
	nextID    int64

	// injected failures, keyed by operation name
	fail map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]models.User{},
		families: map[int64]models.Family{},
		routes:   map[uuid.UUID]models.Route{},
		nextID:   100,
		fail:     map[string]error{},
	}
}

func (s *memStore) addUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) user(id int64) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

type memUsers struct{ s *memStore }

func (r memUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["users.find"]; err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r memUsers) FindByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.FindByID(ctx, id)
}

func (r memUsers) Save(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["users.save"]; err != nil {
		return nil, err
	}
	r.s.users[u.ID] = *u
	return u, nil
}

type memFamilies struct{ s *memStore }

func (r memFamilies) Create(ctx context.Context, f *models.Family) (*models.Family, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["families.create"]; err != nil {
		return nil, err
	}
	for _, existing := range r.s.families {
		if existing.InviteCode == f.InviteCode {
			return nil, common.ErrInviteCodeTaken
		}
	}
	r.s.nextID++
	f.ID = r.s.nextID
	f.CreatedAt = time.Now()
	r.s.families[f.ID] = *f
	return f, nil
}

func (r memFamilies) FindByMemberUserID(ctx context.Context, userID int64) (*models.Family, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["families.find"]; err != nil {
		return nil, err
	}
	u, ok := r.s.users[userID]
	if !ok || !u.Family.Valid {
		return nil, common.ErrorNotFound
	}
	f := r.s.families[u.Family.V.ID]
	return &f, nil
}

func (r memFamilies) FindByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.families {
		if f.InviteCode == code {
			return &f, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memMissions struct{ s *memStore }

func (r memMissions) FindByUserIDAndStatus(ctx context.Context, userID int64, status models.MissionStatus) ([]*models.Mission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["missions.find"]; err != nil {
		return nil, err
	}
	var out []*models.Mission
	for _, m := range r.s.missions {
		if m.UserID == userID && m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}

type memCollected struct{ s *memStore }

func (r memCollected) FindByUserID(ctx context.Context, userID int64) ([]*models.Collected, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["collected.find"]; err != nil {
		return nil, err
	}
	var out []*models.Collected
	for _, c := range r.s.collected {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memRoutes struct{ s *memStore }

func (r memRoutes) Create(ctx context.Context, route *models.Route) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["routes.create"]; err != nil {
		return err
	}
	route.CreatedAt = time.Now()
	stored := *route
	stored.Points = append([]models.Waypoint(nil), route.Points...)
	r.s.routes[route.ID] = stored
	return nil
}

func (r memRoutes) FindByID(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	route, ok := r.s.routes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &route, nil
}

type memManager struct{ s *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m memManager) Users(dbx.DBTX) users.Repository              { return memUsers{m.s} }
func (m memManager) Families(dbx.DBTX) families.Repository        { return memFamilies{m.s} }
func (m memManager) Missions(dbx.DBTX) missions.Repository        { return memMissions{m.s} }
func (m memManager) Collected(dbx.DBTX) collected.Repository      { return memCollected{m.s} }
func (m memManager) Routes(dbx.DBTX) routes.Repository            { return memRoutes{m.s} }

// fixedIssuer hands out the given codes in order.
type fixedIssuer struct {
	codes []string
	err   error
}

func (f *fixedIssuer) Issue() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	code := f.codes[0]
	f.codes = f.codes[1:]
	return code, nil
}
