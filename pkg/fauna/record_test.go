package fauna_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooarch/faunadb/pkg/fauna"
)

// TestRecord_Accessors verifies typed access over the dynamic column
// map with driver-shaped values.
func TestRecord_Accessors(t *testing.T) {
	rec := fauna.Record{
		fauna.ColID:       int64(7),
		fauna.ColUnitID:   int64(12),
		fauna.ColSite:     []byte("Pompei"),
		fauna.ColMNI:      "3.5",
		fauna.ColRecorder: nil,
	}

	assert.Equal(t, int64(7), rec.ID())
	assert.Equal(t, int64(12), rec.UnitID())
	assert.Equal(t, "Pompei", rec.Str(fauna.ColSite))
	assert.Equal(t, 3.5, rec.Float(fauna.ColMNI))
	assert.Equal(t, "", rec.Str(fauna.ColRecorder))
	assert.Equal(t, "", rec.Str("missing"))
	assert.Equal(t, 0.0, rec.Float("missing"))
}

// TestRecord_SpeciesParts verifies the JSON column is authoritative
// with the legacy columns as single-row fallback.
func TestRecord_SpeciesParts(t *testing.T) {
	rec := fauna.Record{
		fauna.ColSpeciesParts:  `[["Sus scrofa","Mandibola"],["Bos taurus","Cranio"]]`,
		fauna.ColSpecies:       "Ovis aries",
		fauna.ColSkeletalParts: "Femore",
	}
	pairs := rec.SpeciesParts()
	require.Len(t, pairs, 2)
	assert.Equal(t, "Sus scrofa", pairs[0].Species)

	// empty JSON column falls back to the legacy pair
	legacy := fauna.Record{
		fauna.ColSpecies:       "Ovis aries",
		fauna.ColSkeletalParts: "Femore",
	}
	pairs = legacy.SpeciesParts()
	require.Len(t, pairs, 1)
	assert.Equal(t, "Ovis aries", pairs[0].Species)
	assert.Equal(t, "Femore", pairs[0].Part)

	assert.Nil(t, fauna.Record{}.SpeciesParts())
}

// TestRecord_ApplyLegacyMirror verifies the first pair is copied into
// the legacy columns.
func TestRecord_ApplyLegacyMirror(t *testing.T) {
	rec := fauna.Record{
		fauna.ColSpeciesParts: `[["Sus scrofa","Mandibola"],["Bos taurus","Cranio"]]`,
		fauna.ColSpecies:      "stale",
	}
	rec.ApplyLegacyMirror()
	assert.Equal(t, "Sus scrofa", rec[fauna.ColSpecies])
	assert.Equal(t, "Mandibola", rec[fauna.ColSkeletalParts])

	// no repeating list, legacy columns untouched
	rec = fauna.Record{fauna.ColSpecies: "Ovis aries"}
	rec.ApplyLegacyMirror()
	assert.Equal(t, "Ovis aries", rec[fauna.ColSpecies])
}

// TestKnownColumn verifies the whitelist.
func TestKnownColumn(t *testing.T) {
	assert.True(t, fauna.KnownColumn(fauna.ColSite))
	assert.True(t, fauna.KnownColumn(fauna.ColMeasurements))
	assert.False(t, fauna.KnownColumn("id_us; DROP TABLE"))
	assert.False(t, fauna.KnownColumn(""))
}

// TestDefaultSearchFields verifies the search fields are all known
// columns.
func TestDefaultSearchFields(t *testing.T) {
	for _, col := range fauna.DefaultSearchFields {
		assert.True(t, fauna.KnownColumn(col), col)
	}
}

// TestRecord_Clone verifies a shallow, independent copy.
func TestRecord_Clone(t *testing.T) {
	rec := fauna.Record{fauna.ColSite: "Pompei"}
	cp := rec.Clone()
	cp[fauna.ColSite] = "Ostia"
	assert.Equal(t, "Pompei", rec.Str(fauna.ColSite))
}
