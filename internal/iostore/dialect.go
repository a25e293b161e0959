package iostore

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect captures the differences between the two supported engines so
// the store can be written once. Schema resources are authored in the
// SQLite dialect; Translate rewrites them for the engine at hand.
type Dialect interface {
	// Name is the engine identifier, matching the connection document.
	Name() string

	// Placeholder returns the parameter marker for the n-th argument
	// (1-based).
	Placeholder(n int) string

	// SearchPredicate returns a case-insensitive substring predicate for
	// a text column, bound to the n-th argument.
	SearchPredicate(column string, n int) string

	// CatalogQuery returns a count query over the engine catalog with a
	// single parameter for the table name.
	CatalogQuery() string

	// Translate rewrites a schema script from the SQLite dialect.
	Translate(script string) string

	// ReturningInsert reports whether inserts fetch the generated key
	// with a RETURNING clause instead of LastInsertId.
	ReturningInsert() bool

	// BootstrapInTx reports whether the schema bootstrap runs inside a
	// single transaction. PostgreSQL runs statement-by-statement so one
	// tolerated failure does not poison the rest.
	BootstrapInTx() bool
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Placeholder(_ int) string { return "?" }

// LIKE is case-insensitive for ASCII in SQLite, matching the search
// behavior users expect from the form.
func (sqliteDialect) SearchPredicate(column string, _ int) string {
	return fmt.Sprintf("%s LIKE ?", column)
}

func (sqliteDialect) CatalogQuery() string {
	return `SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`
}

func (sqliteDialect) Translate(script string) string { return script }

func (sqliteDialect) ReturningInsert() bool { return false }

func (sqliteDialect) BootstrapInTx() bool { return true }

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// Non-text columns are cast so ILIKE works uniformly across the field
// set.
func (postgresDialect) SearchPredicate(column string, n int) string {
	return fmt.Sprintf("%s::text ILIKE $%d", column, n)
}

func (postgresDialect) CatalogQuery() string {
	return `SELECT count(*) FROM pg_catalog.pg_tables
		WHERE tablename = $1`
}

func (postgresDialect) ReturningInsert() bool { return true }

func (postgresDialect) BootstrapInTx() bool { return false }

var (
	reAutoincrement = regexp.MustCompile(
		`(?i)INTEGER\s+PRIMARY\s+KEY\s+AUTOINCREMENT`)
	reCreateIfNotExists = regexp.MustCompile(
		`(?i)CREATE\s+TABLE\s+IF\s+NOT\s+EXISTS`)
	reInsertOrIgnore = regexp.MustCompile(`(?i)INSERT\s+OR\s+IGNORE\s+INTO`)
	reNumericSpace   = regexp.MustCompile(`(?i)NUMERIC\s+\(`)
)

// Translate rewrites a SQLite-dialect schema script for PostgreSQL:
// comments are stripped, AUTOINCREMENT becomes an identity column,
// IF NOT EXISTS on tables is dropped in favor of tolerated duplicate
// errors, INSERT OR IGNORE becomes INSERT ... ON CONFLICT DO NOTHING,
// and numeric literals for booleans become TRUE/FALSE.
func (postgresDialect) Translate(script string) string {
	script = stripLineComments(script)
	script = reAutoincrement.ReplaceAllString(
		script, "INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY")
	script = reCreateIfNotExists.ReplaceAllString(script, "CREATE TABLE")
	script = reInsertOrIgnore.ReplaceAllString(script, "INSERT INTO")
	script = strings.ReplaceAll(script, "BOOLEAN DEFAULT 1", "BOOLEAN DEFAULT TRUE")
	script = strings.ReplaceAll(script, "BOOLEAN DEFAULT 0", "BOOLEAN DEFAULT FALSE")
	script = reNumericSpace.ReplaceAllString(script, "NUMERIC(")
	return script
}

// stripLineComments truncates every line at the first "--". The schema
// resources keep string literals free of double dashes, so a plain
// truncation is safe.
func stripLineComments(script string) string {
	lines := strings.Split(script, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func dialectFor(backend string) (Dialect, bool) {
	switch backend {
	case "sqlite":
		return sqliteDialect{}, true
	case "postgres":
		return postgresDialect{}, true
	}
	return nil, false
}
