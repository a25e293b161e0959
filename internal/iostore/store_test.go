package iostore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooarch/faunadb/pkg/config"
)

// newTestStore opens a fresh SQLite database in a temp dir, runs the
// bootstrap and seeds a small reference unit table the way the host
// application would have.
func newTestStore(t *testing.T) *store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test_db.sqlite")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	conn := config.ConnectionConfig{
		Type: config.BackendSQLite,
		Path: path,
	}
	st, err := New(context.Background(), conn)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := st.(*store)
	seedUnits(t, s)
	return s
}

func seedUnits(t *testing.T, s *store) {
	t.Helper()
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS us_table (
			id_us INTEGER PRIMARY KEY AUTOINCREMENT,
			sito TEXT, area TEXT, us TEXT, saggio TEXT, datazione TEXT)`,
		`INSERT INTO us_table (sito, area, us, saggio, datazione)
			VALUES ('Pompei', '1', '100', 'A', 'I sec. d.C.')`,
		`INSERT INTO us_table (sito, area, us, saggio, datazione)
			VALUES ('Pompei', '1', '101', 'A', 'I sec. d.C.')`,
		`INSERT INTO us_table (sito, area, us, saggio, datazione)
			VALUES ('Pompei', '2', '200', 'B', 'II sec. d.C.')`,
		`INSERT INTO us_table (sito, area, us, saggio, datazione)
			VALUES ('Ostia', '1', '10', 'C', '')`,
	}
	for _, stmt := range stmts {
		_, err := s.db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
}

// TestNew_MissingFile verifies a missing SQLite file is a connection
// error, not a silently created empty database.
func TestNew_MissingFile(t *testing.T) {
	conn := config.ConnectionConfig{
		Type: config.BackendSQLite,
		Path: filepath.Join(t.TempDir(), "nope.sqlite"),
	}
	_, err := New(context.Background(), conn)
	require.Error(t, err)
}

// TestNew_UnknownBackend verifies backend validation.
func TestNew_UnknownBackend(t *testing.T) {
	conn := config.ConnectionConfig{Type: "oracle"}
	_, err := New(context.Background(), conn)
	require.Error(t, err)
}

// TestBootstrap_CreatesSchema verifies the embedded scripts create both
// tables and seed the vocabulary.
func TestBootstrap_CreatesSchema(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, table := range []string{"fauna_table", "fauna_voc"} {
		exists, err := s.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	vals, err := s.ListVocabValues(ctx, "stato_conservazione")
	require.NoError(t, err)
	assert.Len(t, vals, 6, "conservation scale should be seeded 0-5")
	assert.Equal(t, "0", vals[0])
	assert.Equal(t, "5", vals[5])
}

// TestBootstrap_Idempotent verifies a second connection over the same
// file bootstraps cleanly and does not duplicate seeds.
func TestBootstrap_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st2, err := New(ctx, s.conn)
	require.NoError(t, err)
	defer st2.Close()

	vals, err := st2.ListVocabValues(ctx, "tracce_combustione")
	require.NoError(t, err)
	assert.Len(t, vals, 3)
}

// TestTableExists_Absent verifies a missing table reports false without
// error.
func TestTableExists_Absent(t *testing.T) {
	s := newTestStore(t)
	exists, err := s.TableExists(context.Background(), "no_such_table")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestTestConnection_OK verifies the success outcome reports the unit
// count.
func TestTestConnection_OK(t *testing.T) {
	s := newTestStore(t)

	msg, err := TestConnection(context.Background(), s.conn)
	require.NoError(t, err)
	assert.Contains(t, msg, "4 stratigraphic units")
}

// TestTestConnection_MissingFile verifies the unreachable outcome.
func TestTestConnection_MissingFile(t *testing.T) {
	conn := config.ConnectionConfig{
		Type: config.BackendSQLite,
		Path: filepath.Join(t.TempDir(), "nope.sqlite"),
	}
	_, err := TestConnection(context.Background(), conn)
	require.Error(t, err)
	assert.Equal(t, ConnFailureUnreachable, CategorizeConnError(err))
}

// TestTestConnection_MissingReferenceTable verifies a reachable
// database without us_table is rejected.
func TestTestConnection_MissingReferenceTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.sqlite")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	conn := config.ConnectionConfig{
		Type: config.BackendSQLite,
		Path: path,
	}

	_, err := TestConnection(context.Background(), conn)
	require.Error(t, err)
	var gerr *gn.Error
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Err.Error(), "us_table")
}

// TestCategorizeConnError verifies failure classification from driver
// error text.
func TestCategorizeConnError(t *testing.T) {
	tests := []struct {
		msg  string
		want ConnFailureCategory
	}{
		{"pq: no password supplied", ConnFailureMissingPassword},
		{"password authentication failed for user", ConnFailureAuthentication},
		{"dial tcp 10.0.0.1:5432: connection refused", ConnFailureUnreachable},
		{"lookup dbhost: no such host", ConnFailureUnreachable},
		{"stat /nope.sqlite: no such file or directory", ConnFailureUnreachable},
		{"something odd happened", ConnFailureOther},
	}
	for _, tc := range tests {
		got := CategorizeConnError(errString(tc.msg))
		assert.Equal(t, tc.want, got, tc.msg)
	}
	assert.Equal(t, ConnFailureOther, CategorizeConnError(nil))
}

type errString string

func (e errString) Error() string { return string(e) }
