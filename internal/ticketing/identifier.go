package ticketing

import (
	"fmt"
	"math/rand"
)

const (
	// Ticket IDs are six digits so they read naturally on a printed
	// ticket and in the QR payload.
	MinTicketID = 100000
	MaxTicketID = 999999

	// MaxBatchSize caps how many tickets one purchase may issue.
	MaxBatchSize = 10
)

// IDAllocator picks unused ticket IDs by rejection sampling: draw a
// uniform ID, throw it away if taken, repeat. The used set it samples
// against is a snapshot, so callers must still treat the database
// uniqueness constraint as authoritative at insert time.
type IDAllocator struct {
	min int
	max int
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{min: MinTicketID, max: MaxTicketID}
}

// Allocate returns n distinct IDs not present in used.
func (a *IDAllocator) Allocate(n int, used map[int]struct{}) ([]int, error) {
	if n < 1 || n > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, n)
	}

	space := a.max - a.min + 1
	if len(used)+n > space {
		return nil, ErrCapacityExhausted
	}

	picked := make(map[int]struct{}, n)
	ids := make([]int, 0, n)
	for len(ids) < n {
		id := a.min + rand.Intn(space)
		if _, taken := used[id]; taken {
			continue
		}
		if _, taken := picked[id]; taken {
			continue
		}
		picked[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
