package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEdgeTouchingQueryBoundary(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert("edge", NewEnvelope(10, 10, 20, 20)))

	// Query window shares the x=10 edge with the stored rectangle.
	got, err := tr.Search(NewEnvelope(0, 0, 10, 15))
	require.NoError(t, err)
	assert.Equal(t, []Payload{"edge"}, got)
}

func TestSearchFullyCoveredSubtreeFastPath(t *testing.T) {
	tr := New(WithMaxEntries(4))
	var items []Item
	for i := 0; i < 64; i++ {
		items = append(items, Item{Payload: i, Envelope: NewEnvelope(i, i, i+1, i+1)})
	}
	require.NoError(t, tr.Load(items))

	got, err := tr.Search(NewEnvelope(minInt/2, minInt/2, maxInt/2, maxInt/2))
	require.NoError(t, err)
	assert.Len(t, got, 64)
}

func TestHeightBoundsLenOnEmptyTree(t *testing.T) {
	tr := New()
	assert.Equal(t, 1, tr.Height())
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, emptyEnvelope(), tr.Bounds())
}

func TestBoundsTracksInsertedEnvelopes(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert("a", NewEnvelope(0, 0, 1, 1)))
	require.NoError(t, tr.Insert("b", NewEnvelope(9, 9, 20, 20)))

	assert.Equal(t, NewEnvelope(0, 0, 20, 20), tr.Bounds())
}

func TestSearchInvalidWindow(t *testing.T) {
	tr := New()
	_, err := tr.Search(Envelope{X1: 1, Y1: 0, X2: 0, Y2: 1})
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestSearchCoveringRequiresFullContainment(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert("contained", NewEnvelope(2, 2, 4, 4)))
	require.NoError(t, tr.Insert("straddling", NewEnvelope(4, 4, 20, 20)))

	got, err := tr.SearchCovering(NewEnvelope(0, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, []Payload{"contained"}, got)
}

func TestFilteredSearch(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, NewEnvelope(0, 0, 1, 1)))
	require.NoError(t, tr.Insert(2, NewEnvelope(0, 0, 1, 1)))
	require.NoError(t, tr.Insert(3, NewEnvelope(0, 0, 1, 1)))

	got, err := tr.FilteredSearch(NewEnvelope(-5, -5, 5, 5), func(p Payload) bool {
		return p.(int)%2 == 1
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Payload{1, 3}, got)
}

func TestIntersects(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert("a", NewEnvelope(0, 0, 10, 10)))

	got, err := tr.Intersects(NewEnvelope(5, 5, 6, 6))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = tr.Intersects(NewEnvelope(100, 100, 200, 200))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIterateItemsAbort(t *testing.T) {
	tr := New()
	for i := 0; i < 10; i++ {
		require.NoError(t, tr.Insert(i, NewEnvelope(i, i, i+1, i+1)))
	}

	seen := 0
	tr.IterateItems(func(p Payload) bool {
		seen++
		return seen == 3
	})
	assert.Equal(t, 3, seen)
}

func TestIterateInternalNodes(t *testing.T) {
	tr := New(WithMaxEntries(4))
	for i := 0; i < 50; i++ {
		require.NoError(t, tr.Insert(i, NewEnvelope(i, i, i+1, i+1)))
	}

	var nodeCount int
	tr.IterateInternalNodes(func(bounds Envelope, height int, leaf bool) bool {
		nodeCount++
		return false
	})
	assert.Greater(t, nodeCount, 1)
}
