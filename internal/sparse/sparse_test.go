package sparse

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestSetInsertContains(t *testing.T) {
	s := New(8)

	s.Insert(3)
	s.Insert(5)
	s.Insert(3)

	assert.Equal(t, s.Len(), 2)
	assert.Assert(t, s.Contains(3))
	assert.Assert(t, s.Contains(5))
	assert.Assert(t, !s.Contains(4))
	assert.Assert(t, !s.Contains(100), "out of range values are never members")
	assert.DeepEqual(t, s.Values(), []uint32{3, 5})
}

// TestSetClearKeepsStaleSlotsInvisible checks that values inserted before a
// Clear are not reported by Contains afterwards, even though the sparse array
// still holds their old indices.
func TestSetClearKeepsStaleSlotsInvisible(t *testing.T) {
	s := New(4)
	s.Insert(0)
	s.Insert(1)
	s.Insert(2)
	s.Clear()

	assert.Equal(t, s.Len(), 0)
	for v := uint32(0); v < 4; v++ {
		assert.Assert(t, !s.Contains(v), "value %d survived Clear", v)
	}

	s.Insert(2)
	assert.Assert(t, s.Contains(2))
	assert.Assert(t, !s.Contains(0))
	assert.Equal(t, s.Capacity(), 4)
}

func TestSetRemove(t *testing.T) {
	s := New(8)
	s.Insert(1)
	s.Insert(4)
	s.Insert(6)

	s.Remove(1)
	s.Remove(7)

	assert.Equal(t, s.Len(), 2)
	assert.Assert(t, !s.Contains(1))
	assert.Assert(t, s.Contains(4))
	assert.Assert(t, s.Contains(6))
	assert.DeepEqual(t, s.Values(), []uint32{6, 4})

	s.Remove(6)
	s.Remove(4)
	assert.Equal(t, s.Len(), 0)
	s.Insert(1)
	assert.Assert(t, s.Contains(1))
}
