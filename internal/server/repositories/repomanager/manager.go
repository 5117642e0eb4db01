package repomanager

import (
	"context"
	"database/sql"

	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/repositories/collected"
	"github.com/yeojiphap/choki/internal/server/repositories/families"
	"github.com/yeojiphap/choki/internal/server/repositories/missions"
	"github.com/yeojiphap/choki/internal/server/repositories/routes"
	"github.com/yeojiphap/choki/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either a connection pool or
// a transaction, so services can choose per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Families(db dbx.DBTX) families.Repository
	Missions(db dbx.DBTX) missions.Repository
	Collected(db dbx.DBTX) collected.Repository
	Routes(db dbx.DBTX) routes.Repository
}
