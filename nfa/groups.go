package nfa

import (
	"slices"
	"strconv"
	"strings"
)

// OpenSlot returns the capture slot recording the start of group g.
func OpenSlot(g int) int { return 2 * g }

// CloseSlot returns the capture slot recording the end of group g.
func CloseSlot(g int) int { return 2*g + 1 }

// GroupBoundaries lists the capture slots a transition sets to the current
// position and the slots it resets. The zero value carries no updates.
type GroupBoundaries struct {
	updates []int
	clears  []int
}

// NewGroupBoundaries returns boundaries with sorted, deduplicated slot lists.
// A slot present in both lists is treated as an update.
func NewGroupBoundaries(updates, clears []int) GroupBoundaries {
	u := normalizeSlots(updates)
	c := normalizeSlots(clears)
	c = slices.DeleteFunc(c, func(s int) bool {
		_, found := slices.BinarySearch(u, s)
		return found
	})
	if len(c) == 0 {
		c = nil
	}
	return GroupBoundaries{updates: u, clears: c}
}

func normalizeSlots(slots []int) []int {
	if len(slots) == 0 {
		return nil
	}
	out := slices.Clone(slots)
	slices.Sort(out)
	return slices.Compact(out)
}

// Updates returns the slots set to the current position.
// The returned slice must not be modified.
func (g GroupBoundaries) Updates() []int {
	return g.updates
}

// Clears returns the slots reset to "unset".
// The returned slice must not be modified.
func (g GroupBoundaries) Clears() []int {
	return g.clears
}

// IsEmpty reports whether the boundaries touch no slot
func (g GroupBoundaries) IsEmpty() bool {
	return len(g.updates) == 0 && len(g.clears) == 0
}

// Equal reports whether both boundaries touch the same slots the same way
func (g GroupBoundaries) Equal(other GroupBoundaries) bool {
	return slices.Equal(g.updates, other.updates) && slices.Equal(g.clears, other.clears)
}

// MaxSlot returns the largest slot referenced, or -1.
func (g GroupBoundaries) MaxSlot() int {
	m := -1
	if n := len(g.updates); n > 0 {
		m = g.updates[n-1]
	}
	if n := len(g.clears); n > 0 {
		m = max(m, g.clears[n-1])
	}
	return m
}

// String renders the boundaries as "set{2,3} clear{4}".
func (g GroupBoundaries) String() string {
	var parts []string
	if len(g.updates) > 0 {
		parts = append(parts, "set"+slotList(g.updates))
	}
	if len(g.clears) > 0 {
		parts = append(parts, "clear"+slotList(g.clears))
	}
	return strings.Join(parts, " ")
}

func slotList(slots []int) string {
	strs := make([]string, len(slots))
	for i, s := range slots {
		strs[i] = strconv.Itoa(s)
	}
	return "{" + strings.Join(strs, ",") + "}"
}
