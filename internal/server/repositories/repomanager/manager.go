package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/patientauth/internal/dbx"
	"github.com/dmitrijs2005/patientauth/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/patientauth/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or a transaction,
// so one unit of work can span several of them.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
