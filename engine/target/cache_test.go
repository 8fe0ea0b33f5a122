package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strafekit/aimassist/engine/geom"
)

func TestCachePingPong(t *testing.T) {
	var c Cache

	c.Swap()
	c.Store([]Tracked{{ShapeID: 1, AssistTime: 0.5}})
	require.Len(t, c.Current(), 1)

	// After the flip, frame 1's entries are the previous frame.
	c.Swap()
	prev, ok := c.Previous(1)
	require.True(t, ok)
	assert.Equal(t, 0.5, prev.AssistTime)
	assert.Empty(t, c.Current())

	_, ok = c.Previous(99)
	assert.False(t, ok)

	// Entries absent from the new frame are dropped after the next flip.
	c.Store([]Tracked{{ShapeID: 2}})
	c.Swap()
	_, ok = c.Previous(1)
	assert.False(t, ok)
	_, ok = c.Previous(2)
	assert.True(t, ok)
}

func TestCarryOverDerivesMovementDelta(t *testing.T) {
	prev := &Tracked{
		ShapeID:      7,
		Location:     geom.V3(100, 0, 0),
		AssistTime:   1.2,
		AssistWeight: 0.8,
		Visible:      true,
	}
	cur := Tracked{ShapeID: 7, Location: geom.V3(110, -5, 0)}
	cur.carryOver(prev)

	assert.Equal(t, 1.2, cur.AssistTime)
	assert.Equal(t, 0.8, cur.AssistWeight)
	assert.True(t, cur.Visible)
	assert.InDelta(t, 10, cur.MovementDelta.X, 1e-9)
	assert.InDelta(t, -5, cur.MovementDelta.Y, 1e-9)
}
