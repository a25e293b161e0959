package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/zooarch/faunadb/pkg/fauna"
)

// unitColumns are the columns read from the reference unit table. Other
// columns the host application keeps there are ignored.
var unitColumns = []string{"id_us", "sito", "area", "us", "saggio", "datazione"}

var unitColumnSet = func() map[string]struct{} {
	res := make(map[string]struct{}, len(unitColumns))
	for _, col := range unitColumns {
		res[col] = struct{}{}
	}
	return res
}()

// ListReferenceUnits returns units ordered by (site, area, unit),
// optionally scoped by site.
func (s *store) ListReferenceUnits(ctx context.Context, site string) ([]fauna.ReferenceUnit, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s",
		strings.Join(unitColumns, ", "), ReferenceTable,
	)
	var args []any
	if site != "" {
		q += fmt.Sprintf(" WHERE sito = %s", s.dia.Placeholder(1))
		args = append(args, site)
	}
	q += " ORDER BY sito, area, us"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	var res []fauna.ReferenceUnit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(err)
	}
	return res, nil
}

// GetReferenceUnit returns one unit, or nil when absent.
func (s *store) GetReferenceUnit(ctx context.Context, id int64) (*fauna.ReferenceUnit, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id_us = %s",
		strings.Join(unitColumns, ", "), ReferenceTable, s.dia.Placeholder(1),
	)
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, ScanError(err)
		}
		return nil, nil
	}
	u, err := scanUnit(rows)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListDistinct returns the distinct non-empty values of a reference
// unit column, optionally constrained by exact-match filters on other
// unit columns.
func (s *store) ListDistinct(ctx context.Context, column string, filters fauna.Filters) ([]string, error) {
	if _, ok := unitColumnSet[column]; !ok {
		return nil, ColumnError(column)
	}

	preds := []string{
		fmt.Sprintf("%s IS NOT NULL", column),
	}
	var args []any
	var cols []string
	for col, val := range filters {
		if val == "" {
			continue
		}
		if _, ok := unitColumnSet[col]; !ok {
			return nil, ColumnError(col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		preds = append(preds, fmt.Sprintf(
			"%s = %s", col, s.dia.Placeholder(len(args)+1),
		))
		args = append(args, filters[col])
	}

	q := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s WHERE %s ORDER BY %s",
		column, ReferenceTable, strings.Join(preds, " AND "), column,
	)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, ScanError(err)
		}
		if v.Valid && v.String != "" {
			res = append(res, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(err)
	}
	return res, nil
}

// scanUnit reads the current row. The unit number is text in some host
// databases and integer in others, so every field scans through
// NullString.
func scanUnit(rows *sql.Rows) (fauna.ReferenceUnit, error) {
	var u fauna.ReferenceUnit
	var site, area, unit, trench, dating sql.NullString
	err := rows.Scan(&u.ID, &site, &area, &unit, &trench, &dating)
	if err != nil {
		return u, ScanError(err)
	}
	u.Site = site.String
	u.Area = area.String
	u.Unit = unit.String
	u.Trench = trench.String
	u.Dating = dating.String
	return u, nil
}
