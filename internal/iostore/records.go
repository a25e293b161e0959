package iostore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zooarch/faunadb/pkg/fauna"
)

// recordOrder matches the data-entry form: records group by site, then
// area and unit, with insertion order inside a unit.
const recordOrder = "ORDER BY sito, area, us, id_fauna"

// ListRecords returns records matching the filters, ordered by
// (site, area, unit, identity).
func (s *store) ListRecords(ctx context.Context, filters fauna.Filters) ([]fauna.Record, error) {
	where, args, err := s.filterClause(filters, 0)
	if err != nil {
		return nil, err
	}

	q := "SELECT * FROM fauna_table" + where + " " + recordOrder
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetRecord returns one record, or nil when absent.
func (s *store) GetRecord(ctx context.Context, id int64) (fauna.Record, error) {
	q := fmt.Sprintf(
		"SELECT * FROM fauna_table WHERE id_fauna = %s",
		s.dia.Placeholder(1),
	)
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// InsertRecord writes a new record and returns its identity. The
// identity column is stripped so the engine assigns it; the legacy
// species/part mirror is refreshed first.
func (s *store) InsertRecord(ctx context.Context, rec fauna.Record) (int64, error) {
	rec = rec.Clone()
	rec.ApplyLegacyMirror()
	delete(rec, fauna.ColID)

	cols, args, err := orderedColumns(rec)
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, InsertError(fmt.Errorf("record has no columns"))
	}

	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = s.dia.Placeholder(i + 1)
	}
	q := fmt.Sprintf(
		"INSERT INTO fauna_table (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(marks, ", "),
	)

	if s.dia.ReturningInsert() {
		q += " RETURNING id_fauna"
		var id int64
		if err := s.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, InsertError(err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, InsertError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, InsertError(err)
	}
	return id, nil
}

// UpdateRecord replaces the named columns of an existing record.
func (s *store) UpdateRecord(ctx context.Context, id int64, rec fauna.Record) (bool, error) {
	rec = rec.Clone()
	rec.ApplyLegacyMirror()
	delete(rec, fauna.ColID)

	cols, args, err := orderedColumns(rec)
	if err != nil {
		return false, err
	}
	if len(cols) == 0 {
		return false, UpdateError(id, fmt.Errorf("no columns to update"))
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = %s", col, s.dia.Placeholder(i+1))
	}
	q := fmt.Sprintf(
		"UPDATE fauna_table SET %s WHERE id_fauna = %s",
		strings.Join(sets, ", "), s.dia.Placeholder(len(cols)+1),
	)
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, UpdateError(id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, UpdateError(id, err)
	}
	return n > 0, nil
}

// DeleteRecord removes one record.
func (s *store) DeleteRecord(ctx context.Context, id int64) (bool, error) {
	n, err := s.DeleteRecords(ctx, []int64{id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteRecords removes a batch and returns the number of rows actually
// removed, which can be lower than the batch size when some identities
// are stale.
func (s *store) DeleteRecords(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = s.dia.Placeholder(i + 1)
		args[i] = id
	}
	q := fmt.Sprintf(
		"DELETE FROM fauna_table WHERE id_fauna IN (%s)",
		strings.Join(marks, ", "),
	)

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, DeleteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, DeleteError(err)
	}
	return n, nil
}

// SearchRecords returns records whose text columns contain term, ORed
// across fields. An empty term lists everything.
func (s *store) SearchRecords(ctx context.Context, term string, fields []string) ([]fauna.Record, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListRecords(ctx, nil)
	}

	if fields == nil {
		fields = fauna.DefaultSearchFields
	}

	preds := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for i, col := range fields {
		if !fauna.KnownColumn(col) {
			return nil, ColumnError(col)
		}
		preds = append(preds, s.dia.SearchPredicate(col, i+1))
		args = append(args, "%"+term+"%")
	}

	q := fmt.Sprintf(
		"SELECT * FROM fauna_table WHERE %s %s",
		strings.Join(preds, " OR "), recordOrder,
	)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// filterClause renders an exact-match WHERE clause over whitelisted
// columns. Placeholder numbering starts after offset.
func (s *store) filterClause(filters fauna.Filters, offset int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	cols := make([]string, 0, len(filters))
	for col, val := range filters {
		if val == "" {
			continue
		}
		if !fauna.KnownColumn(col) {
			return "", nil, ColumnError(col)
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return "", nil, nil
	}
	sort.Strings(cols)

	preds := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		preds[i] = fmt.Sprintf("%s = %s", col, s.dia.Placeholder(offset+i+1))
		args[i] = filters[col]
	}
	return " WHERE " + strings.Join(preds, " AND "), args, nil
}

// orderedColumns extracts the record's columns in the canonical column
// order so generated SQL is deterministic.
func orderedColumns(rec fauna.Record) ([]string, []any, error) {
	for col := range rec {
		if !fauna.KnownColumn(col) {
			return nil, nil, ColumnError(col)
		}
	}

	var cols []string
	var args []any
	for _, col := range fauna.Columns {
		v, ok := rec[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		args = append(args, v)
	}
	return cols, args, nil
}
