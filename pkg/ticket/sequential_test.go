package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestSplitID(t *testing.T) {
	area, g1, g2, g3, ok := SplitID("A05-02-01")
	require.True(t, ok)
	assert.Equal(t, "A", area)
	assert.Equal(t, 5, g1)
	assert.Equal(t, 2, g2)
	assert.Equal(t, 1, g3)

	for _, bad := range []string{"", "foo", "A05-02", "a05-02-01", "5A5-02-01", "A05-xx-01"} {
		_, _, _, _, ok := SplitID(bad)
		assert.False(t, ok, "SplitID(%q) should fail", bad)
	}
}

func TestSequentialGapInSequence(t *testing.T) {
	all := idSet("A01-01-01", "A01-01-02", "A01-01-04")

	assert.True(t, Sequential("A01-01-01", all))
	assert.True(t, Sequential("A01-01-02", all))
	// 03 is missing, so 04 has a gap before it.
	assert.False(t, Sequential("A01-01-04", all))

	// Filling the gap clears the issue on the next run.
	all["A01-01-03"] = struct{}{}
	assert.True(t, Sequential("A01-01-04", all))
}

func TestSequentialGapInAreaGroup(t *testing.T) {
	all := idSet("B02-01-01")
	// B01-*-* does not exist anywhere.
	assert.False(t, Sequential("B02-01-01", all))

	all["B01-03-00"] = struct{}{}
	assert.True(t, Sequential("B02-01-01", all))
}

func TestSequentialGapInCategory(t *testing.T) {
	all := idSet("A01-02-01")
	// A01-01-* does not exist.
	assert.False(t, Sequential("A01-02-01", all))

	all["A01-01-05"] = struct{}{}
	assert.True(t, Sequential("A01-02-01", all))
}

func TestSequentialZeroSequence(t *testing.T) {
	// A sequence group of 00 has no predecessors to require.
	all := idSet("A01-01-00")
	assert.True(t, Sequential("A01-01-00", all))
}

func TestSequentialUnparsableID(t *testing.T) {
	assert.False(t, Sequential("not-an-id", idSet("A01-01-01")))
	assert.False(t, Sequential("", idSet("A01-01-01")))
}
