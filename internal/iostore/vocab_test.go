package iostore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooarch/faunadb/pkg/fauna"
)

// TestListVocabValues_Order verifies active-only listing in
// (sort order, value) order.
func TestListVocabValues_Order(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	vals, err := s.ListVocabValues(ctx, "metodologia_recupero")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"RACCOLTA MANUALE", "SETACCIO", "FLOTTAZIONE"}, vals)

	vals, err = s.ListVocabValues(ctx, "elemento_anatomico")
	require.NoError(t, err)
	require.Len(t, vals, 18)
	assert.Equal(t, "Astragalo", vals[0])
	assert.Equal(t, "Altro", vals[17])
}

// TestListVocabValues_UnknownField verifies an unknown field yields an
// empty list.
func TestListVocabValues_UnknownField(t *testing.T) {
	s := newTestStore(t)
	vals, err := s.ListVocabValues(context.Background(), "no_such_field")
	require.NoError(t, err)
	assert.Empty(t, vals)
}

// TestListVocabFields verifies the distinct field listing covers the
// seeded vocabulary.
func TestListVocabFields(t *testing.T) {
	s := newTestStore(t)
	fields, err := s.ListVocabFields(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fields, "specie")
	assert.Contains(t, fields, "stato_conservazione")
	assert.Contains(t, fields, "tipologia_accumulo")
	assert.GreaterOrEqual(t, len(fields), 14)
}

// TestAddVocabEntry verifies insert, duplicate rejection and the
// active flag round trip.
func TestAddVocabEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddVocabEntry(ctx, fauna.VocabEntry{
		Field:     "specie",
		Value:     "Felis catus",
		SortOrder: 10,
		Active:    true,
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	vals, err := s.ListVocabValues(ctx, "specie")
	require.NoError(t, err)
	assert.Contains(t, vals, "Felis catus")

	// (campo, valore) is unique
	_, err = s.AddVocabEntry(ctx, fauna.VocabEntry{
		Field:  "specie",
		Value:  "Felis catus",
		Active: true,
	})
	require.Error(t, err)
}

// TestUpdateVocabEntry verifies deactivation hides a value from choice
// lists while the editor still sees it.
func TestUpdateVocabEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries, err := s.ListVocabEntries(ctx, "tipo_combustione")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	e := entries[0]
	e.Active = false
	ok, err := s.UpdateVocabEntry(ctx, e)
	require.NoError(t, err)
	assert.True(t, ok)

	vals, err := s.ListVocabValues(ctx, "tipo_combustione")
	require.NoError(t, err)
	assert.Len(t, vals, 2)
	assert.NotContains(t, vals, e.Value)

	entries, err = s.ListVocabEntries(ctx, "tipo_combustione")
	require.NoError(t, err)
	assert.Len(t, entries, 3, "editor still lists inactive values")
}

// TestDeleteVocabEntry verifies removal by identity.
func TestDeleteVocabEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries, err := s.ListVocabEntries(ctx, "deposizione")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ok, err := s.DeleteVocabEntry(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteVocabEntry(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete finds nothing")

	vals, err := s.ListVocabValues(ctx, "deposizione")
	require.NoError(t, err)
	assert.Len(t, vals, 1)
}
