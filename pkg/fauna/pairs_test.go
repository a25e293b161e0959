package fauna_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooarch/faunadb/pkg/fauna"
)

// TestSpeciesParts_Encoding verifies the JSON column shape: an array
// of two-element string arrays.
func TestSpeciesParts_Encoding(t *testing.T) {
	pairs := []fauna.SpeciesPart{
		{Species: "Sus scrofa", Part: "Mandibola"},
		{Species: "Bos taurus", Part: ""},
	}
	text, err := fauna.EncodeSpeciesParts(pairs)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[["Sus scrofa","Mandibola"],["Bos taurus",""]]`, text)

	back, err := fauna.DecodeSpeciesParts(text)
	require.NoError(t, err)
	assert.Equal(t, pairs, back)
}

// TestSpeciesParts_Empty verifies the empty list encodes to "" and
// blank text decodes to nil.
func TestSpeciesParts_Empty(t *testing.T) {
	text, err := fauna.EncodeSpeciesParts(nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)

	pairs, err := fauna.DecodeSpeciesParts("  ")
	require.NoError(t, err)
	assert.Nil(t, pairs)
}

// TestSpeciesParts_ShortRows verifies rows shorter than two elements
// are padded rather than rejected.
func TestSpeciesParts_ShortRows(t *testing.T) {
	pairs, err := fauna.DecodeSpeciesParts(`[["Ovis aries"],[]]`)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Ovis aries", pairs[0].Species)
	assert.Equal(t, "", pairs[0].Part)
	assert.Equal(t, "", pairs[1].Species)
}

// TestSpeciesParts_BadJSON verifies a malformed column errors out.
func TestSpeciesParts_BadJSON(t *testing.T) {
	_, err := fauna.DecodeSpeciesParts("{not an array")
	require.Error(t, err)
}

// TestMeasurements_RoundTrip verifies the six-element row shape with
// dimensions as strings.
func TestMeasurements_RoundTrip(t *testing.T) {
	mm := []fauna.Measurement{
		{
			Element: "Astragalo", Species: "Bos taurus",
			Dim1: "60.5", Dim2: "", Dim3: "33.1", Dim4: "",
		},
	}
	text, err := fauna.EncodeMeasurements(mm)
	require.NoError(t, err)

	back, err := fauna.DecodeMeasurements(text)
	require.NoError(t, err)
	assert.Equal(t, mm, back)
}

// TestMeasurements_Dims verifies empty and non-numeric dimensions read
// as zero.
func TestMeasurements_Dims(t *testing.T) {
	m := fauna.Measurement{Dim1: "60.5", Dim2: "", Dim3: "n/a", Dim4: " 12 "}
	dims := m.Dims()
	assert.Equal(t, [4]float64{60.5, 0, 0, 12}, dims)
}

// TestMeasurements_ShortRows verifies short rows are padded to six
// elements.
func TestMeasurements_ShortRows(t *testing.T) {
	mm, err := fauna.DecodeMeasurements(`[["Femore","Sus scrofa","41.2"]]`)
	require.NoError(t, err)
	require.Len(t, mm, 1)
	assert.Equal(t, "Femore", mm[0].Element)
	assert.Equal(t, "41.2", mm[0].Dim1)
	assert.Equal(t, "", mm[0].Dim4)
}
