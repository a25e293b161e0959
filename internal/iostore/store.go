// Package iostore implements the fauna.Store contract over both
// database engines with a single implementation. Engine differences are
// isolated in the Dialect; everything else runs through database/sql.
package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/zooarch/faunadb/pkg/config"
	"github.com/zooarch/faunadb/pkg/fauna"
)

// ReferenceTable is the host application's stratigraphic unit table.
// It must already exist; this system never creates or writes it.
const ReferenceTable = "us_table"

type store struct {
	db   *sql.DB
	pool *pgxpool.Pool
	dia  Dialect
	conn config.ConnectionConfig
}

// New connects to the configured backend, runs the schema bootstrap and
// returns the store. A bootstrap failure is logged and swallowed: the
// store stays usable for whatever schema is already present.
func New(ctx context.Context, conn config.ConnectionConfig) (fauna.Store, error) {
	s, err := dial(ctx, conn)
	if err != nil {
		return nil, err
	}

	if err := s.bootstrap(ctx); err != nil {
		slog.Warn("Schema bootstrap failed, continuing with existing schema",
			"backend", conn.Type, "error", err)
	}

	return s, nil
}

// dial opens the connection without touching the schema.
func dial(ctx context.Context, conn config.ConnectionConfig) (*store, error) {
	dia, ok := dialectFor(conn.Type)
	if !ok {
		return nil, ConnectionError(conn,
			fmt.Errorf("unknown backend type %q", conn.Type))
	}

	s := &store{dia: dia, conn: conn}

	switch conn.Type {
	case config.BackendSQLite:
		// The database file belongs to the host application. Opening a
		// missing path would silently create an empty database, so the
		// file must exist up front.
		if _, err := os.Stat(conn.Path); err != nil {
			return nil, ConnectionError(conn, err)
		}
		db, err := sql.Open("sqlite", conn.Path)
		if err != nil {
			return nil, ConnectionError(conn, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, ConnectionError(conn, err)
		}
		s.db = db

	case config.BackendPostgres:
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s",
			conn.User, conn.Password, conn.Host, conn.Port, conn.Database,
		)
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, ConnectionError(conn, err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, ConnectionError(conn, err)
		}
		s.pool = pool
		s.db = stdlib.OpenDBFromPool(pool)
	}

	return s, nil
}

// InitSchema connects and runs the schema bootstrap, surfacing any
// bootstrap failure instead of swallowing it the way New does.
func InitSchema(ctx context.Context, conn config.ConnectionConfig) error {
	s, err := dial(ctx, conn)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.bootstrap(ctx)
}

// TestConnection verifies the connection parameters without running the
// schema bootstrap. Three outcomes are possible: the backend is
// unreachable (error), it is reachable but lacks the reference unit
// table (error), or it is usable and the message reports how many
// stratigraphic units it holds.
func TestConnection(ctx context.Context, conn config.ConnectionConfig) (string, error) {
	s, err := dial(ctx, conn)
	if err != nil {
		return "", err
	}
	defer s.Close()

	exists, err := s.TableExists(ctx, ReferenceTable)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", MissingReferenceTableError(conn)
	}

	var count int64
	q := fmt.Sprintf("SELECT count(*) FROM %s", ReferenceTable)
	if err := s.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return "", QueryError(q, err)
	}

	msg := fmt.Sprintf("Connection OK (%s), %d stratigraphic units available",
		conn.String(), count)
	return msg, nil
}

// TableExists checks the engine catalog for a table.
func (s *store) TableExists(ctx context.Context, table string) (bool, error) {
	var count int64
	q := s.dia.CatalogQuery()
	if err := s.db.QueryRowContext(ctx, q, table).Scan(&count); err != nil {
		return false, TableCheckError(table, err)
	}
	return count > 0, nil
}

// Close releases the underlying connection.
func (s *store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// scanRecords materializes a result set into records. Byte slices are
// converted to strings so the records behave the same on both engines.
func scanRecords(rows *sql.Rows) ([]fauna.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, ScanError(err)
	}

	var res []fauna.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, ScanError(err)
		}

		rec := make(fauna.Record, len(cols))
		for i, col := range cols {
			switch v := vals[i].(type) {
			case nil:
				rec[col] = nil
			case []byte:
				rec[col] = string(v)
			default:
				rec[col] = v
			}
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(err)
	}
	return res, nil
}
