package texel

// DefaultHistoryCapacity is the number of snapshots a History retains.
const DefaultHistoryCapacity = 15

// Snapshot is an immutable encoded copy of the whole raster, produced by a
// SurfaceCodec. Its content is opaque to everything except the codec.
type Snapshot string

// History is a bounded linear undo stack of snapshots with a cursor.
//
// While the history is non-empty the cursor is a valid index. Pushing while
// the cursor is behind the tail discards every entry after the cursor.
// When the capacity is exceeded the oldest entry is dropped for good.
type History struct {
	entries  []Snapshot
	cursor   int
	capacity int
}

// NewHistory creates an empty history. A capacity below 1 selects
// DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		entries:  make([]Snapshot, 0, capacity+1),
		cursor:   -1,
		capacity: capacity,
	}
}

// Push records s as the newest entry. After Push the cursor always points at s.
func (h *History) Push(s Snapshot) {
	if h.cursor < len(h.entries)-1 {
		clear(h.entries[h.cursor+1:])
		h.entries = h.entries[:h.cursor+1]
	}

	h.entries = append(h.entries, s)
	if len(h.entries) > h.capacity {
		h.entries[0] = ""
		h.entries = append(h.entries[:0], h.entries[1:]...)
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back one entry and returns the snapshot there.
// It returns false and leaves the cursor alone when already at the oldest
// retained entry.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// redo moves the cursor forward again. Only used to roll back an Undo whose
// snapshot could not be decoded.
func (h *History) redo() {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
	}
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// Current returns the snapshot at the cursor.
func (h *History) Current() (Snapshot, bool) {
	if h.cursor < 0 {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the current position, or -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}

// Capacity returns the maximum number of retained snapshots.
func (h *History) Capacity() int {
	return h.capacity
}

// Reset drops every entry.
func (h *History) Reset() {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.cursor = -1
}
