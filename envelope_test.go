package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelopeNormalizesReversedCorners(t *testing.T) {
	e := NewEnvelope(10, 10, 0, 0)
	assert.Equal(t, Envelope{X1: 0, Y1: 0, X2: 10, Y2: 10}, e)
}

func TestEnvelopeArea(t *testing.T) {
	e := NewEnvelope(0, 0, 10, 10)
	assert.Equal(t, 100, e.Area())
}

func TestEnvelopeMargin(t *testing.T) {
	e := NewEnvelope(0, 0, 10, 4)
	assert.Equal(t, 14, e.Margin())
}

func TestEnvelopeExtend(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	b := NewEnvelope(5, 5, 15, 15)
	assert.Equal(t, NewEnvelope(0, 0, 15, 15), a.Extend(b))
}

func TestEnvelopeExtendIsCommutativeAndIdempotent(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	b := NewEnvelope(5, 5, 20, 3)

	assert.Equal(t, a.Extend(b), b.Extend(a))
	assert.Equal(t, a, a.Extend(a))
}

func TestEmptyEnvelopeIsExtendIdentity(t *testing.T) {
	e := emptyEnvelope()
	r := NewEnvelope(3, 4, 9, 12)
	assert.Equal(t, r, e.Extend(r))
	assert.Equal(t, r, r.Extend(e))
}

func TestEmptyEnvelopeHasZeroAreaAndMargin(t *testing.T) {
	e := emptyEnvelope()
	assert.Equal(t, 0, e.Area())
	assert.Equal(t, 0, e.Margin())
}

func TestEnvelopeIntersectsTouchingEdgesCount(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	b := NewEnvelope(10, 0, 20, 10) // shares the x=10 edge
	assert.True(t, a.Intersects(b))

	c := NewEnvelope(11, 0, 20, 10)
	assert.False(t, a.Intersects(c))
}

func TestEnvelopeContainsSelf(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	assert.True(t, a.Contains(a))
}

func TestEnvelopeContains(t *testing.T) {
	outer := NewEnvelope(0, 0, 10, 10)
	inner := NewEnvelope(2, 2, 8, 8)
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestValidateEnvelope(t *testing.T) {
	require.NoError(t, validateEnvelope(NewEnvelope(0, 0, 1, 1)))

	bad := Envelope{X1: 5, Y1: 0, X2: 0, Y2: 1}
	assert.Error(t, validateEnvelope(bad))
}
