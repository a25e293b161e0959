package fauna

// Browser navigates a materialized result set the way the record form
// does: the full list of the last load or search is held in memory with
// a current-position index, and first/previous/next/last are pure index
// moves without re-querying.
type Browser struct {
	records []Record
	pos     int
}

// NewBrowser returns a Browser with no loaded records.
func NewBrowser() *Browser {
	return &Browser{pos: -1}
}

// Load replaces the in-memory list and resets the position to the first
// row, or to "no selection" when the list is empty.
func (b *Browser) Load(records []Record) {
	b.records = records
	if len(records) == 0 {
		b.pos = -1
		return
	}
	b.pos = 0
}

// Len returns the number of loaded records.
func (b *Browser) Len() int {
	return len(b.records)
}

// Position returns the zero-based index of the current record, -1 when
// nothing is selected.
func (b *Browser) Position() int {
	return b.pos
}

// Current returns the selected record, or nil when nothing is selected.
func (b *Browser) Current() Record {
	if b.pos < 0 || b.pos >= len(b.records) {
		return nil
	}
	return b.records[b.pos]
}

// First moves to the first record.
func (b *Browser) First() Record {
	if len(b.records) == 0 {
		return nil
	}
	b.pos = 0
	return b.records[0]
}

// Previous moves one record back; at the start it stays put.
func (b *Browser) Previous() Record {
	if len(b.records) == 0 {
		return nil
	}
	if b.pos > 0 {
		b.pos--
	}
	return b.records[b.pos]
}

// Next moves one record forward; at the end it stays put.
func (b *Browser) Next() Record {
	if len(b.records) == 0 {
		return nil
	}
	if b.pos < len(b.records)-1 {
		b.pos++
	}
	return b.records[b.pos]
}

// Last moves to the last record.
func (b *Browser) Last() Record {
	if len(b.records) == 0 {
		return nil
	}
	b.pos = len(b.records) - 1
	return b.records[b.pos]
}

// Seek selects the record with the given identity and reports whether
// it was found.
func (b *Browser) Seek(id int64) bool {
	for i, rec := range b.records {
		if rec.ID() == id {
			b.pos = i
			return true
		}
	}
	return false
}
