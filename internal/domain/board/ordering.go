package board

import (
	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/shared"
)

// Position ledger rules. Among the non-archived children of one parent,
// positions must always form a contiguous 0..N-1 sequence in display
// order. Only two code paths write positions: append at creation and the
// renumbering pass after a structural change.

// AppendPosition returns the position for a newly created or restored
// sibling: the current count of active siblings.
func AppendPosition(activeSiblings int) int {
	return activeSiblings
}

// ClampIndex bounds a requested insertion index to [0, n] where n is the
// number of active siblings the entity will join. A requested position
// past the end appends; negative values are rejected by callers before
// this point.
func ClampIndex(requested, n int) int {
	if requested < 0 {
		return 0
	}
	if requested > n {
		return n
	}
	return requested
}

// InsertAt places id at the requested index of the ordered id sequence,
// removing any prior occurrence first. The requested position is treated
// as an insertion index into the current display order, not as a sort
// tiebreaker.
func InsertAt(ordered []uuid.UUID, id uuid.UUID, index int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ordered)+1)
	for _, other := range ordered {
		if other != id {
			out = append(out, other)
		}
	}
	index = ClampIndex(index, len(out))
	out = append(out, uuid.Nil)
	copy(out[index+1:], out[index:])
	out[index] = id
	return out
}

// Renumber maps every id of the ordered sequence to its index. The result
// is written back in one atomic batch by the repository.
func Renumber(ordered []uuid.UUID) map[uuid.UUID]int {
	positions := make(map[uuid.UUID]int, len(ordered))
	for i, id := range ordered {
		positions[id] = i
	}
	return positions
}

// ValidateReorder checks that a client-supplied full ordering names
// exactly the current active siblings, no more, no less, no duplicates.
func ValidateReorder(current, proposed []uuid.UUID) error {
	if len(current) != len(proposed) {
		return shared.NewDomainError("INVALID_ORDERING", "ordering must contain every active sibling exactly once")
	}
	seen := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	dup := make(map[uuid.UUID]bool, len(proposed))
	for _, id := range proposed {
		if !seen[id] || dup[id] {
			return shared.NewDomainError("INVALID_ORDERING", "ordering must contain every active sibling exactly once")
		}
		dup[id] = true
	}
	return nil
}
