// Package store owns database access: opening the connection, applying
// schema migrations, and handing out repositories.
package store

import (
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open connects to the SQLite database at dsn and wraps it in bun.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open database")
	}

	if err := sqldb.Ping(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to reach database")
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
