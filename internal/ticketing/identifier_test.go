package ticketing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateDistinctIDsInRange(t *testing.T) {
	alloc := NewIDAllocator()

	ids, err := alloc.Allocate(10, nil)
	require.NoError(t, err)
	require.Len(t, ids, 10)

	seen := make(map[int]struct{})
	for _, id := range ids {
		assert.GreaterOrEqual(t, id, MinTicketID)
		assert.LessOrEqual(t, id, MaxTicketID)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate ID %d in batch", id)
		seen[id] = struct{}{}
	}
}

func TestAllocateSkipsUsedIDs(t *testing.T) {
	alloc := &IDAllocator{min: 1, max: 5}
	used := map[int]struct{}{1: {}, 2: {}, 3: {}}

	ids, err := alloc.Allocate(2, used)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{4, 5}, ids)
}

func TestAllocateInvalidQuantity(t *testing.T) {
	alloc := NewIDAllocator()

	for _, n := range []int{0, -1, 11} {
		_, err := alloc.Allocate(n, nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", n)
	}
}

func TestAllocateCapacityExhausted(t *testing.T) {
	alloc := &IDAllocator{min: 1, max: 5}
	used := map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}}

	_, err := alloc.Allocate(2, used)
	assert.ErrorIs(t, err, ErrCapacityExhausted)

	// One slot left and one requested still succeeds.
	ids, err := alloc.Allocate(1, used)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids)
}
