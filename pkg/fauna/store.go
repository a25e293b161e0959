package fauna

import (
	"context"
)

// ReferenceUnit is a stratigraphic-unit row of the host application.
// Read-only to this system: units populate choice lists and stamp
// denormalized copies of their fields onto fauna records at save time.
type ReferenceUnit struct {
	ID     int64
	Site   string
	Area   string
	Unit   string
	Trench string
	Dating string
}

// VocabEntry is one controlled-vocabulary value for a form field.
type VocabEntry struct {
	ID          int64
	Field       string
	Value       string
	Description string
	SortOrder   int
	Active      bool
}

// Filters is an exact-match conjunction over named columns. Empty
// values are skipped.
type Filters map[string]string

// Store is the data-access contract implemented once over both database
// backends. Construction connects and runs the schema bootstrap; a
// bootstrap failure is logged and swallowed so the store stays usable
// for whatever schema is present.
type Store interface {
	// ListReferenceUnits returns units ordered by (site, area, unit),
	// optionally scoped by site.
	ListReferenceUnits(ctx context.Context, site string) ([]ReferenceUnit, error)

	// GetReferenceUnit returns one unit, or nil when absent.
	GetReferenceUnit(ctx context.Context, id int64) (*ReferenceUnit, error)

	// ListVocabValues returns active vocabulary values for a field,
	// ordered by (sort order, value).
	ListVocabValues(ctx context.Context, field string) ([]string, error)

	// ListVocabEntries returns all vocabulary rows for a field,
	// inactive ones included, for the vocabulary editor.
	ListVocabEntries(ctx context.Context, field string) ([]VocabEntry, error)

	// ListVocabFields returns the distinct field names present in the
	// vocabulary table.
	ListVocabFields(ctx context.Context) ([]string, error)

	// AddVocabEntry inserts a vocabulary value and returns its identity.
	AddVocabEntry(ctx context.Context, e VocabEntry) (int64, error)

	// UpdateVocabEntry replaces a vocabulary row by identity.
	UpdateVocabEntry(ctx context.Context, e VocabEntry) (bool, error)

	// DeleteVocabEntry removes a vocabulary row by identity.
	DeleteVocabEntry(ctx context.Context, id int64) (bool, error)

	// ListRecords returns records matching the filters, ordered by
	// (site, area, unit, identity). Nil filters list everything.
	ListRecords(ctx context.Context, filters Filters) ([]Record, error)

	// GetRecord returns one record, or nil when absent.
	GetRecord(ctx context.Context, id int64) (Record, error)

	// InsertRecord writes a new record and returns its identity. The
	// identity column is stripped from the input if present; the legacy
	// species/part mirror is applied before writing.
	InsertRecord(ctx context.Context, rec Record) (int64, error)

	// UpdateRecord replaces the named columns of an existing record and
	// reports whether any row was affected.
	UpdateRecord(ctx context.Context, id int64, rec Record) (bool, error)

	// DeleteRecord removes one record.
	DeleteRecord(ctx context.Context, id int64) (bool, error)

	// DeleteRecords removes a batch and returns the number of rows
	// actually removed.
	DeleteRecords(ctx context.Context, ids []int64) (int64, error)

	// SearchRecords returns records whose text columns contain term,
	// ORed across fields (DefaultSearchFields when fields is nil).
	// An empty term means "return everything".
	SearchRecords(ctx context.Context, term string, fields []string) ([]Record, error)

	// ListDistinct returns the distinct non-null values of a reference
	// unit column, optionally constrained by filters.
	ListDistinct(ctx context.Context, column string, filters Filters) ([]string, error)

	// TableExists checks the engine catalog for a table.
	TableExists(ctx context.Context, table string) (bool, error)

	// Close releases the underlying connection.
	Close() error
}
