package project

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/clickhouse"
	"github.com/pseudomuto/viewkeeper/pkg/config"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/session"
	"github.com/pseudomuto/viewkeeper/pkg/sqlconn"
)

// ErrNoDSN is returned when connecting without a configured DSN.
var ErrNoDSN = errors.New("dsn is required")

// Conn is a live connection for the configured dialect.
type Conn interface {
	schema.Conn
	Close() error
}

// Connect opens a connection for cfg.Dialect. ClickHouse goes over the native
// protocol and everything else through database/sql.
func Connect(ctx context.Context, cfg *config.Config) (Conn, error) {
	if cfg.DSN == "" {
		return nil, ErrNoDSN
	}

	d, err := dialect.Get(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	if d.Name() == "clickhouse" {
		client, err := clickhouse.NewClientWithOptions(ctx, cfg.DSN, clickhouse.ClientOptions{
			Cluster:     cfg.ClickHouse.Cluster,
			DialTimeout: cfg.ClickHouse.DialTimeout,
			TLSSettings: clickhouse.TLSSettings{
				CertFile: cfg.ClickHouse.TLS.CertFile,
				KeyFile:  cfg.ClickHouse.TLS.KeyFile,
				CAFile:   cfg.ClickHouse.TLS.CAFile,
			},
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	conn, err := sqlconn.Open(ctx, cfg.Dialect, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// RefreshWith refreshes key over conn. database/sql connections run the
// refresh in a session that is committed on success; ClickHouse servers are
// first checked for refresh support.
func (p *Project) RefreshWith(ctx context.Context, conn Conn, key string, concurrently bool) error {
	if err := p.checkDialect(conn); err != nil {
		return err
	}

	switch c := conn.(type) {
	case *clickhouse.Client:
		if err := c.CheckRefresh(ctx); err != nil {
			return err
		}
		return p.Refresh(ctx, c, key, concurrently)

	case *sqlconn.Conn:
		sess := session.New(c.DB(), c.Dialect())
		if err := p.Refresh(ctx, sess, key, concurrently); err != nil {
			_ = sess.Rollback()
			return err
		}
		return sess.Commit(ctx)
	}

	return errors.Errorf("refresh is not supported over %T", conn)
}
