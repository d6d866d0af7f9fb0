package store

import (
	"context"
	"fmt"

	"github.com/benpate/derp"
)

// Memory is a canned, in-process MessageStore.  It recognizes a fixed,
// inclusive range of ids and fabricates a deterministic message for each.
// Memory is never mutated after creation, so it is safe to share across
// any number of workers without locks.
type Memory struct {
	first int
	last  int
}

// NewMemory returns a Memory store that recognizes ids 1 through 5
func NewMemory() Memory {
	return NewMemoryRange(1, 5)
}

// NewMemoryRange returns a Memory store that recognizes ids in the
// inclusive range [first, last]
func NewMemoryRange(first int, last int) Memory {
	return Memory{
		first: first,
		last:  last,
	}
}

// FetchMessage returns the canned message for ids inside the range, and an
// invalid-id error for everything else (including zero and negative ids).
func (memory Memory) FetchMessage(_ context.Context, messageID int) (string, error) {

	const location = "store.Memory.FetchMessage"

	if messageID < memory.first || messageID > memory.last {
		return "", derp.BadRequestError(location, "Invalid ID", messageID)
	}

	return fmt.Sprintf("Message for ID %d", messageID), nil
}
