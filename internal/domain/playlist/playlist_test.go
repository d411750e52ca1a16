package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/showreel/internal/domain/asset"
)

func items(refs ...string) []asset.Asset {
	out := make([]asset.Asset, len(refs))
	for i, r := range refs {
		out[i] = asset.Asset{Ref: r, Kind: asset.KindPhoto}
	}
	return out
}

func TestCursor_ZeroValue(t *testing.T) {
	var c Cursor
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Exhausted())

	_, ok := c.Current()
	assert.False(t, ok)
}

func TestCursor_Walk(t *testing.T) {
	var c Cursor
	c.Prime(items("a", "b", "c"))

	var seen []string
	for {
		a, ok := c.Current()
		if !ok {
			break
		}
		seen = append(seen, a.Ref)
		c.Advance()
	}
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.True(t, c.Exhausted())
	assert.Equal(t, 3, c.Index())
}

func TestCursor_AdvanceReportsRemaining(t *testing.T) {
	var c Cursor
	c.Prime(items("a", "b"))

	assert.True(t, c.Advance())
	assert.False(t, c.Advance())
	assert.False(t, c.Advance(), "advancing past the end does not move further")
	assert.Equal(t, 2, c.Index())
}

func TestCursor_PrimeCopiesAndRewinds(t *testing.T) {
	src := items("a", "b")
	var c Cursor
	c.Prime(src)
	c.Advance()

	src[0].Ref = "mutated"
	c.Prime(c.Items())
	assert.Equal(t, 0, c.Index())

	a, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "a", a.Ref)
}

func TestCursor_Reset(t *testing.T) {
	var c Cursor
	c.Prime(items("a", "b", "c"))
	c.Advance()
	c.Reset()

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Items())
}
