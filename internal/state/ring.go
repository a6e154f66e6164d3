package state

// Ring is a fixed-capacity buffer of lines; pushing onto a full ring drops
// the oldest line.
type Ring struct {
	lines []string
	idx   int
	count int
}

// NewRing returns an empty ring holding at most capacity lines.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRecentLimit
	}
	return &Ring{lines: make([]string, capacity)}
}

// Push appends a line.
func (r *Ring) Push(line string) {
	r.lines[r.idx] = line
	r.idx = (r.idx + 1) % len(r.lines)
	if r.count < len(r.lines) {
		r.count++
	}
}

// Len returns the number of stored lines.
func (r *Ring) Len() int { return r.count }

// Lines returns the stored lines, oldest first.
func (r *Ring) Lines() []string {
	return r.Last(r.count)
}

// Last returns up to n of the most recent lines, oldest first.
func (r *Ring) Last(n int) []string {
	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}
	out := make([]string, n)
	size := len(r.lines)
	first := (r.idx - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = r.lines[(first+i)%size]
	}
	return out
}
