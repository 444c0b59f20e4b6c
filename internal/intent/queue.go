package intent

// Queue is an ordered outbound intent buffer drained once per loop
// iteration. It is not safe for concurrent use.
type Queue struct {
	items []Intent
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends intents in order
func (q *Queue) Push(in ...Intent) {
	q.items = append(q.items, in...)
}

// Len returns the number of pending intents
func (q *Queue) Len() int {
	return len(q.items)
}

// Drain returns every pending intent and empties the queue
func (q *Queue) Drain() []Intent {
	out := q.items
	q.items = nil
	return out
}

// Kinds returns the kinds of the pending intents without draining them
func (q *Queue) Kinds() []Kind {
	kinds := make([]Kind, len(q.items))
	for i, in := range q.items {
		kinds[i] = in.Kind
	}
	return kinds
}
