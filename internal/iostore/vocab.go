package iostore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zooarch/faunadb/pkg/fauna"
)

// ListVocabValues returns active vocabulary values for a field, ordered
// by (sort order, value).
func (s *store) ListVocabValues(ctx context.Context, field string) ([]string, error) {
	q := fmt.Sprintf(
		`SELECT valore FROM fauna_voc
		WHERE campo = %s AND attivo = %s
		ORDER BY ordinamento, valore`,
		s.dia.Placeholder(1), s.dia.Placeholder(2),
	)
	rows, err := s.db.QueryContext(ctx, q, field, true)
	if err != nil {
		return nil, VocabQueryError(field, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, VocabQueryError(field, err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, VocabQueryError(field, err)
	}
	return res, nil
}

// ListVocabEntries returns all vocabulary rows for a field, inactive
// ones included, for the vocabulary editor.
func (s *store) ListVocabEntries(ctx context.Context, field string) ([]fauna.VocabEntry, error) {
	q := fmt.Sprintf(
		`SELECT id_voc, campo, valore, descrizione, ordinamento, attivo
		FROM fauna_voc WHERE campo = %s
		ORDER BY ordinamento, valore`,
		s.dia.Placeholder(1),
	)
	rows, err := s.db.QueryContext(ctx, q, field)
	if err != nil {
		return nil, VocabQueryError(field, err)
	}
	defer rows.Close()

	var res []fauna.VocabEntry
	for rows.Next() {
		var e fauna.VocabEntry
		var desc sql.NullString
		var order sql.NullInt64
		err := rows.Scan(&e.ID, &e.Field, &e.Value, &desc, &order, &e.Active)
		if err != nil {
			return nil, VocabQueryError(field, err)
		}
		e.Description = desc.String
		e.SortOrder = int(order.Int64)
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, VocabQueryError(field, err)
	}
	return res, nil
}

// ListVocabFields returns the distinct field names present in the
// vocabulary table.
func (s *store) ListVocabFields(ctx context.Context) ([]string, error) {
	q := "SELECT DISTINCT campo FROM fauna_voc ORDER BY campo"
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, VocabQueryError("", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, VocabQueryError("", err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, VocabQueryError("", err)
	}
	return res, nil
}

// AddVocabEntry inserts a vocabulary value and returns its identity.
func (s *store) AddVocabEntry(ctx context.Context, e fauna.VocabEntry) (int64, error) {
	q := fmt.Sprintf(
		`INSERT INTO fauna_voc (campo, valore, descrizione, ordinamento, attivo)
		VALUES (%s, %s, %s, %s, %s)`,
		s.dia.Placeholder(1), s.dia.Placeholder(2), s.dia.Placeholder(3),
		s.dia.Placeholder(4), s.dia.Placeholder(5),
	)
	args := []any{e.Field, e.Value, e.Description, e.SortOrder, e.Active}

	if s.dia.ReturningInsert() {
		q += " RETURNING id_voc"
		var id int64
		if err := s.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, VocabWriteError(e.Field, err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, VocabWriteError(e.Field, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, VocabWriteError(e.Field, err)
	}
	return id, nil
}

// UpdateVocabEntry replaces a vocabulary row by identity.
func (s *store) UpdateVocabEntry(ctx context.Context, e fauna.VocabEntry) (bool, error) {
	q := fmt.Sprintf(
		`UPDATE fauna_voc
		SET campo = %s, valore = %s, descrizione = %s,
			ordinamento = %s, attivo = %s
		WHERE id_voc = %s`,
		s.dia.Placeholder(1), s.dia.Placeholder(2), s.dia.Placeholder(3),
		s.dia.Placeholder(4), s.dia.Placeholder(5), s.dia.Placeholder(6),
	)
	res, err := s.db.ExecContext(
		ctx, q, e.Field, e.Value, e.Description, e.SortOrder, e.Active, e.ID,
	)
	if err != nil {
		return false, VocabWriteError(e.Field, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, VocabWriteError(e.Field, err)
	}
	return n > 0, nil
}

// DeleteVocabEntry removes a vocabulary row by identity.
func (s *store) DeleteVocabEntry(ctx context.Context, id int64) (bool, error) {
	q := fmt.Sprintf(
		"DELETE FROM fauna_voc WHERE id_voc = %s", s.dia.Placeholder(1),
	)
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, VocabWriteError("", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, VocabWriteError("", err)
	}
	return n > 0, nil
}
