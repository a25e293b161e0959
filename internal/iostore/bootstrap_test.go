package iostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTranslate_Postgres verifies the SQLite-to-PostgreSQL rewrites on
// the constructs the schema resources actually use.
func TestTranslate_Postgres(t *testing.T) {
	dia := postgresDialect{}

	in := `-- leading comment
CREATE TABLE IF NOT EXISTS fauna_voc (
    id_voc INTEGER PRIMARY KEY AUTOINCREMENT,
    campo TEXT NOT NULL, -- trailing comment
    attivo BOOLEAN DEFAULT 1,
    nmi NUMERIC (6, 2) DEFAULT 0
);
INSERT OR IGNORE INTO fauna_voc (campo, valore) VALUES ('a', 'b');`

	out := dia.Translate(in)

	assert.NotContains(t, out, "--")
	assert.NotContains(t, out, "trailing comment")
	assert.NotContains(t, out, "AUTOINCREMENT")
	assert.Contains(t, out, "GENERATED ALWAYS AS IDENTITY")
	assert.NotContains(t, out, "IF NOT EXISTS")
	assert.NotContains(t, out, "INSERT OR IGNORE")
	assert.Contains(t, out, "INSERT INTO fauna_voc")
	assert.Contains(t, out, "BOOLEAN DEFAULT TRUE")
	assert.Contains(t, out, "NUMERIC(6, 2)")
}

// TestTranslate_SQLite verifies the identity translation.
func TestTranslate_SQLite(t *testing.T) {
	dia := sqliteDialect{}
	in := "CREATE TABLE IF NOT EXISTS t (a INTEGER PRIMARY KEY AUTOINCREMENT);"
	assert.Equal(t, in, dia.Translate(in))
}

// TestStripLineComments verifies lines are truncated at the first "--".
func TestStripLineComments(t *testing.T) {
	in := "SELECT 1 -- one\n-- whole line\nSELECT 2"
	out := stripLineComments(in)
	assert.Equal(t, "SELECT 1 \n\nSELECT 2", out)
}

// TestSplitStatements verifies empty and comment-only fragments are
// dropped.
func TestSplitStatements(t *testing.T) {
	in := `CREATE TABLE a (x INTEGER);

-- just a comment;
INSERT INTO a (x) VALUES (1);
`
	stmts := splitStatements(in)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE a")
	assert.Contains(t, stmts[1], "INSERT INTO a")
}

// TestClassify verifies statement classification.
func TestClassify(t *testing.T) {
	assert.Equal(t, stmtCreateTable,
		classify("CREATE TABLE IF NOT EXISTS fauna_voc (x INTEGER)"))
	assert.Equal(t, stmtCreateIndex,
		classify("CREATE INDEX IF NOT EXISTS idx ON fauna_voc (campo)"))
	assert.Equal(t, stmtInsert,
		classify("INSERT OR IGNORE INTO fauna_voc (campo) VALUES ('x')"))
	assert.Equal(t, stmtInsert,
		classify("INSERT INTO fauna_voc (campo) VALUES ('x')"))
	assert.Equal(t, stmtOther, classify("VACUUM"))
}

// TestAppendConflictClause verifies the idempotency clause targets only
// vocabulary seed inserts and is never doubled.
func TestAppendConflictClause(t *testing.T) {
	in := "INSERT INTO fauna_voc (campo, valore) VALUES ('a', 'b')"
	out := appendConflictClause(in)
	assert.Contains(t, out, "ON CONFLICT (campo, valore) DO NOTHING")

	assert.Equal(t, out, appendConflictClause(out), "clause is not doubled")

	other := "INSERT INTO fauna_table (sito) VALUES ('x')"
	assert.Equal(t, other, appendConflictClause(other))
}

// TestTolerableSchemaError verifies only already-exists failures are
// swallowed during bootstrap.
func TestTolerableSchemaError(t *testing.T) {
	assert.True(t, tolerableSchemaError(
		errString(`relation "fauna_voc" already exists`)))
	assert.True(t, tolerableSchemaError(
		errString("duplicate key value violates unique constraint")))
	assert.False(t, tolerableSchemaError(
		errString("syntax error at or near")))
	assert.False(t, tolerableSchemaError(nil))
}
