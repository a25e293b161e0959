package iostore

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/zooarch/faunadb/pkg/config"
	"github.com/zooarch/faunadb/pkg/errcode"
)

func ConnectionError(conn config.ConnectionConfig, err error) error {
	msg := "Cannot connect to <em>%s</em>"
	vars := []any{conn.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s: %w",
			fn, conn.String(), err),
	}
}

func MissingReferenceTableError(conn config.ConnectionConfig) error {
	msg := "Database <em>%s</em> is reachable but has no <em>%s</em> table"
	vars := []any{conn.String(), ReferenceTable}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s table is missing on %s",
			fn, ReferenceTable, conn.String()),
	}
}

func TableCheckError(table string, err error) error {
	msg := "Cannot check for table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot check table %s: %w",
			fn, table, err),
	}
}

func QueryError(query string, err error) error {
	msg := "Database query failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: query failed (%s): %w",
			fn, query, err),
	}
}

func ScanError(err error) error {
	msg := "Cannot read database results"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot scan row: %w", fn, err),
	}
}

func ColumnError(column string) error {
	msg := "Unknown column <em>%s</em>"
	vars := []any{column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown column %q", fn, column),
	}
}

func InsertError(err error) error {
	msg := "Cannot save new record"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordInsertError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot insert record: %w", fn, err),
	}
}

func UpdateError(id int64, err error) error {
	msg := "Cannot update record %d"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordUpdateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot update record %d: %w", fn, id, err),
	}
}

func DeleteError(err error) error {
	msg := "Cannot delete records"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordDeleteError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot delete records: %w", fn, err),
	}
}

func VocabQueryError(field string, err error) error {
	msg := "Cannot read vocabulary"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.VocabQueryError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot read vocabulary for %q: %w",
			fn, field, err),
	}
}

func VocabWriteError(field string, err error) error {
	msg := "Cannot change vocabulary"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.VocabWriteError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot change vocabulary for %q: %w",
			fn, field, err),
	}
}

func SchemaResourceError(name string, err error) error {
	msg := "Cannot load schema resource <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaResourceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load schema resource %s: %w",
			fn, name, err),
	}
}

func SchemaStatementError(name, stmt string, err error) error {
	msg := "Schema statement failed in <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaStatementError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: statement failed in %s (%.80s): %w",
			fn, name, stmt, err),
	}
}

func SchemaVerifyError(name, table string) error {
	msg := "Table <em>%s</em> is missing after running <em>%s</em>"
	vars := []any{table, name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaVerifyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: table %s missing after %s",
			fn, table, name),
	}
}

// ConnFailureCategory describes why a connection attempt failed, judged
// from the driver's error text.
type ConnFailureCategory int

const (
	ConnFailureOther ConnFailureCategory = iota
	ConnFailureMissingPassword
	ConnFailureAuthentication
	ConnFailureUnreachable
)

// CategorizeConnError classifies a connection failure so the CLI can
// suggest the right fix: supply a password, fix credentials, or check
// host and port.
func CategorizeConnError(err error) ConnFailureCategory {
	if err == nil {
		return ConnFailureOther
	}
	msg := strings.ToLower(err.Error())
	var gerr *gn.Error
	if errors.As(err, &gerr) && gerr.Err != nil {
		msg += " " + strings.ToLower(gerr.Err.Error())
	}
	switch {
	case strings.Contains(msg, "no password supplied") ||
		strings.Contains(msg, "empty password"):
		return ConnFailureMissingPassword
	case strings.Contains(msg, "password authentication failed") ||
		strings.Contains(msg, "authentication"):
		return ConnFailureAuthentication
	case strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "no such file") ||
		strings.Contains(msg, "unreachable"):
		return ConnFailureUnreachable
	}
	return ConnFailureOther
}
