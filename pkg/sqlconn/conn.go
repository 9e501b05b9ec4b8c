package sqlconn

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	log "github.com/sirupsen/logrus"
)

// ErrNoDriver is returned by Open for dialects without a bundled driver.
var ErrNoDriver = errors.New("no driver for dialect")

// Conn runs statements through a *sql.DB.
type Conn struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// Open opens a database for the named dialect and verifies it with a ping.
//
// Example:
//
//	conn, err := sqlconn.Open(ctx, "postgresql", "postgres://localhost/app?sslmode=disable")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
func Open(ctx context.Context, dialectName, dsn string) (*Conn, error) {
	d, err := dialect.Get(dialectName)
	if err != nil {
		return nil, err
	}

	driver, err := DriverName(d)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", d.Name())
	}

	if d.Name() == "sqlite" && isMemoryDSN(dsn) {
		// Each connection to an in-memory database sees its own copy.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s database", d.Name())
	}

	log.WithFields(log.Fields{"dialect": d.Name(), "driver": driver}).Debug("opened database")
	return New(db, d), nil
}

// New wraps an open handle.
func New(db *sql.DB, d dialect.Dialect) *Conn {
	return &Conn{db: db, dialect: d}
}

// DriverName returns the database/sql driver registered for d.
func DriverName(d dialect.Dialect) (string, error) {
	switch d.Name() {
	case "postgresql":
		return "postgres", nil
	case "sqlite":
		return sqliteDriverName, nil
	case "duckdb":
		return "duckdb", nil
	}

	return "", errors.Wrapf(ErrNoDriver, "%s", d.Name())
}

// SQLiteDriverType reports which SQLite implementation is compiled in:
// "purego" (modernc.org/sqlite) or "cgo" (mattn/go-sqlite3).
func SQLiteDriverType() string { return sqliteDriverType }

func (c *Conn) DB() *sql.DB { return c.db }
func (c *Conn) Dialect() dialect.Dialect { return c.dialect }
func (c *Conn) Close() error { return c.db.Close() }

// Exec runs a single statement. Driver errors are returned as is.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) error {
	log.WithFields(log.Fields{"dialect": c.dialect.Name(), "sql": query}).Debug("executing statement")

	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

// HasRelation reports whether a relation of the given kind exists by
// querying the dialect's catalog. An empty schema means the current one.
func (c *Conn) HasRelation(ctx context.Context, schemaName, name string, kind schema.Kind) (bool, error) {
	q, ok := catalogQuery(c.dialect, schemaName, name, kind)
	if !ok {
		return false, nil
	}

	var one int
	err := c.db.QueryRowContext(ctx, q.sql, q.args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up %s %s", kind, schema.TableKey(schemaName, name))
	}
	return true, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
