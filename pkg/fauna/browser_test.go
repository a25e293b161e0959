package fauna_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooarch/faunadb/pkg/fauna"
)

func loadedBrowser() *fauna.Browser {
	b := fauna.NewBrowser()
	b.Load([]fauna.Record{
		{fauna.ColID: int64(1), fauna.ColSite: "Pompei"},
		{fauna.ColID: int64(2), fauna.ColSite: "Pompei"},
		{fauna.ColID: int64(5), fauna.ColSite: "Ostia"},
	})
	return b
}

// TestBrowser_Load verifies loading selects the first record and an
// empty load clears the selection.
func TestBrowser_Load(t *testing.T) {
	b := loadedBrowser()
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 0, b.Position())
	require.NotNil(t, b.Current())
	assert.Equal(t, int64(1), b.Current().ID())

	b.Load(nil)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, -1, b.Position())
	assert.Nil(t, b.Current())
}

// TestBrowser_Moves verifies navigation clamps at both ends.
func TestBrowser_Moves(t *testing.T) {
	b := loadedBrowser()

	assert.Equal(t, int64(2), b.Next().ID())
	assert.Equal(t, int64(5), b.Next().ID())
	assert.Equal(t, int64(5), b.Next().ID(), "clamped at the end")

	assert.Equal(t, int64(2), b.Previous().ID())
	assert.Equal(t, int64(1), b.Previous().ID())
	assert.Equal(t, int64(1), b.Previous().ID(), "clamped at the start")

	assert.Equal(t, int64(5), b.Last().ID())
	assert.Equal(t, int64(1), b.First().ID())
}

// TestBrowser_MovesEmpty verifies navigation on an empty browser.
func TestBrowser_MovesEmpty(t *testing.T) {
	b := fauna.NewBrowser()
	assert.Nil(t, b.First())
	assert.Nil(t, b.Next())
	assert.Nil(t, b.Previous())
	assert.Nil(t, b.Last())
	assert.Nil(t, b.Current())
}

// TestBrowser_Seek verifies selection by identity.
func TestBrowser_Seek(t *testing.T) {
	b := loadedBrowser()

	require.True(t, b.Seek(5))
	assert.Equal(t, 2, b.Position())

	assert.False(t, b.Seek(99))
	assert.Equal(t, 2, b.Position(), "failed seek keeps the selection")
}
