package event

// Log collects the events emitted within nested call frames. Push opens a
// new frame, Add records into the innermost frame, Commit appends the
// innermost frame's events to its parent and closes it, and Pop discards
// them. Events of frames that end in a revert therefore never reach the
// outermost frame.
type Log struct {
	current []*Event
	parents [][]*Event
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Push() {
	l.parents = append(l.parents, l.current)
	l.current = nil
}

func (l *Log) Add(e *Event) {
	l.current = append(l.current, e)
}

// Commit appends the events of the innermost frame to its parent.
func (l *Log) Commit() {
	last := len(l.parents) - 1
	if last < 0 {
		panic("no open event frame")
	}
	l.current = append(l.parents[last], l.current...)
	l.parents = l.parents[:last]
}

// Pop discards the events of the innermost frame.
func (l *Log) Pop() {
	last := len(l.parents) - 1
	if last < 0 {
		panic("no open event frame")
	}
	l.current = l.parents[last]
	l.parents = l.parents[:last]
}

// Depth returns the number of open frames above the outermost one.
func (l *Log) Depth() int {
	return len(l.parents)
}

// Events returns a copy of the events of the innermost frame.
func (l *Log) Events() Batch {
	return append(Batch(nil), l.current...)
}

// Batch is a list of events, typically those of one transaction.
type Batch []*Event

// Contains reports whether an equal event is part of the batch.
func (b Batch) Contains(e *Event) bool {
	for _, cur := range b {
		if e.Equal(cur) {
			return true
		}
	}
	return false
}

// Filter returns the events matched by the given pattern, see Event.Match.
func (b Batch) Filter(pattern *Event) Batch {
	var res Batch
	for _, cur := range b {
		if pattern.Match(cur) {
			res = append(res, cur)
		}
	}
	return res
}

// WithSignature returns the events whose first indexed value is sig.
func (b Batch) WithSignature(sig string) Batch {
	var res Batch
	for _, cur := range b {
		if cur.Signature() == sig {
			res = append(res, cur)
		}
	}
	return res
}
