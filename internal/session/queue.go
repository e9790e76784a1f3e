package session

// mismatchQueue is the ordered collection of unresolved mismatches.
//
// Entries are appended in ascending document order during a scan and are
// consumed from the head by single resolutions. One scan fully replaces the
// previous generation; no two entries in one generation share a location.
//
// Not thread-safe: the session is single-threaded by design, and Scan
// carries its own single-flight guard.
type mismatchQueue struct {
	items []Mismatch
}

// reset discards the current generation.
func (q *mismatchQueue) reset() {
	q.items = nil
}

// push appends a mismatch. The caller guarantees document order.
func (q *mismatchQueue) push(m Mismatch) {
	q.items = append(q.items, m)
}

// popHead removes and returns the first entry.
func (q *mismatchQueue) popHead() (Mismatch, bool) {
	if len(q.items) == 0 {
		return Mismatch{}, false
	}
	m := q.items[0]

	// Nil out the slot so the backing array does not retain the entry's
	// Location handle after resolution.
	q.items[0] = Mismatch{}
	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}
	return m, true
}

// head returns the first entry without removing it.
func (q *mismatchQueue) head() (Mismatch, bool) {
	if len(q.items) == 0 {
		return Mismatch{}, false
	}
	return q.items[0], true
}

// all returns a copy of the current entries in document order.
func (q *mismatchQueue) all() []Mismatch {
	out := make([]Mismatch, len(q.items))
	copy(out, q.items)
	return out
}

func (q *mismatchQueue) len() int {
	return len(q.items)
}
