package kobra

import "slices"

// InputBufferCap is the maximum number of queued player directions.
const InputBufferCap = 2

// InputBuffer queues player turns between moves. The engine consumes at
// most one per move, so a quick double tap (e.g. up then left) is not lost.
type InputBuffer struct {
	queue []Direction
}

// Enqueue appends dir unless it is invalid, already queued, the reverse of
// the last pending direction (current when nothing is pending), or the
// buffer is full. Reports whether dir was accepted.
func (b *InputBuffer) Enqueue(dir, current Direction) bool {
	if !dir.IsValid() || len(b.queue) >= InputBufferCap {
		return false
	}
	last := current
	if n := len(b.queue); n > 0 {
		last = b.queue[n-1]
	}
	if dir.IsOpposite(last) || slices.Contains(b.queue, dir) {
		return false
	}
	b.queue = append(b.queue, dir)
	return true
}

// Pop removes and returns the oldest pending direction.
func (b *InputBuffer) Pop() (Direction, bool) {
	if len(b.queue) == 0 {
		return Direction{}, false
	}
	d := b.queue[0]
	b.queue = b.queue[1:]
	return d, true
}

// Len returns the number of pending directions.
func (b *InputBuffer) Len() int {
	return len(b.queue)
}

// Clear drops all pending directions.
func (b *InputBuffer) Clear() {
	b.queue = nil
}

// Pending returns a copy of the queue, oldest first.
func (b *InputBuffer) Pending() []Direction {
	return slices.Clone(b.queue)
}
