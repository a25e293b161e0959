package iostore

import (
	"context"
	"database/sql"
	"log/slog"
	"regexp"
	"strings"

	"github.com/zooarch/faunadb/internal/iofs"
)

// stmtKind orders statement execution: tables first, then seed inserts,
// then indexes. Verification runs between the first two phases.
type stmtKind int

const (
	stmtOther stmtKind = iota
	stmtCreateTable
	stmtInsert
	stmtCreateIndex
)

var (
	reTableName = regexp.MustCompile(
		`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+)`)
	reConflictTarget = regexp.MustCompile(
		`(?i)^INSERT\s+INTO\s+fauna_voc`)
)

// bootstrap runs the embedded schema scripts against the connected
// engine. Scripts are authored in the SQLite dialect and translated on
// the way in; already-existing objects are tolerated so the bootstrap
// is idempotent.
func (s *store) bootstrap(ctx context.Context) error {
	for _, name := range iofs.SchemaScripts {
		script, err := iofs.ReadScript(name)
		if err != nil {
			return SchemaResourceError(name, err)
		}
		if err := s.execScript(ctx, name, s.dia.Translate(script)); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) execScript(ctx context.Context, name, script string) error {
	stmts := splitStatements(script)

	if s.dia.BootstrapInTx() {
		return s.execScriptTx(ctx, name, stmts)
	}

	// Autocommit mode: phases run statement by statement so a tolerated
	// duplicate does not abort the rest of the script.
	phases := [][]string{
		statementsOfKind(stmts, stmtCreateTable),
		statementsOfKind(stmts, stmtOther),
		statementsOfKind(stmts, stmtInsert),
		statementsOfKind(stmts, stmtCreateIndex),
	}
	for i, phase := range phases {
		for _, stmt := range phase {
			if s.dia.Name() == "postgres" && classify(stmt) == stmtInsert {
				stmt = appendConflictClause(stmt)
			}
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				if tolerableSchemaError(err) {
					continue
				}
				return SchemaStatementError(name, stmt, err)
			}
		}
		// Inserts and indexes only make sense once the tables landed.
		if i == 0 {
			if err := s.verifyTables(ctx, name, stmts); err != nil {
				return err
			}
		}
	}
	return nil
}

// execScriptTx runs the whole script in one transaction, in source
// order. SQLite accepts the resources as written, so no per-statement
// tolerance is needed.
func (s *store) execScriptTx(ctx context.Context, name string, stmts []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SchemaStatementError(name, "BEGIN", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return SchemaStatementError(name, stmt, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return SchemaStatementError(name, "COMMIT", err)
	}
	return nil
}

// verifyTables checks the engine catalog for every table the script
// creates.
func (s *store) verifyTables(ctx context.Context, name string, stmts []string) error {
	for _, stmt := range stmts {
		if classify(stmt) != stmtCreateTable {
			continue
		}
		m := reTableName.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		table := m[1]
		exists, err := s.TableExists(ctx, table)
		if err != nil {
			return err
		}
		if !exists {
			return SchemaVerifyError(name, table)
		}
		slog.Debug("Schema table present", "script", name, "table", table)
	}
	return nil
}

// splitStatements cuts a script into trimmed statements. Comments are
// already stripped for engines that need it; SQLite understands them
// natively but a trailing comment-only fragment is dropped here too.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	var res []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || onlyComments(p) {
			continue
		}
		res = append(res, p)
	}
	return res
}

func onlyComments(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

func classify(stmt string) stmtKind {
	upper := strings.ToUpper(stmt)
	switch {
	case strings.Contains(upper, "CREATE TABLE"):
		return stmtCreateTable
	case strings.Contains(upper, "CREATE INDEX"):
		return stmtCreateIndex
	case strings.Contains(upper, "INSERT INTO") ||
		strings.Contains(upper, "INSERT OR IGNORE INTO"):
		return stmtInsert
	}
	return stmtOther
}

func statementsOfKind(stmts []string, kind stmtKind) []string {
	var res []string
	for _, stmt := range stmts {
		if classify(stmt) == kind {
			res = append(res, stmt)
		}
	}
	return res
}

// appendConflictClause makes translated seed inserts idempotent on
// PostgreSQL. The vocabulary table's natural key is (campo, valore).
func appendConflictClause(stmt string) string {
	if !reConflictTarget.MatchString(stmt) {
		return stmt
	}
	if strings.Contains(strings.ToUpper(stmt), "ON CONFLICT") {
		return stmt
	}
	return stmt + " ON CONFLICT (campo, valore) DO NOTHING"
}

// tolerableSchemaError reports whether a bootstrap statement failed only
// because its object already exists.
func tolerableSchemaError(err error) bool {
	if err == nil || err == sql.ErrNoRows {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "duplicate")
}
