package kobra

import "testing"

func TestInputBufferRejectsReversal(t *testing.T) {
	var b InputBuffer

	if b.Enqueue(Left, Right) {
		t.Error("reversal of the current direction should be rejected")
	}
	if b.Len() != 0 {
		t.Errorf("rejected input changed the buffer: %v", b.Pending())
	}

	if !b.Enqueue(Up, Right) {
		t.Fatal("Up should be accepted while moving right")
	}
	// Down reverses the pending Up, even though it is legal against Right.
	if b.Enqueue(Down, Right) {
		t.Error("reversal of the last queued direction should be rejected")
	}
	if got := b.Pending(); len(got) != 1 || got[0] != Up {
		t.Errorf("Pending() = %v, expected [up]", got)
	}
}

func TestInputBufferDedupAndCap(t *testing.T) {
	var b InputBuffer

	if !b.Enqueue(Up, Right) || !b.Enqueue(Left, Right) {
		t.Fatal("Up then Left should both be accepted")
	}
	if b.Enqueue(Up, Right) {
		t.Error("full buffer should reject")
	}

	b.Clear()
	b.Enqueue(Right, Right)
	if b.Enqueue(Right, Right) {
		t.Error("duplicate direction should be rejected")
	}
}

func TestInputBufferFIFO(t *testing.T) {
	var b InputBuffer
	b.Enqueue(Down, Right)
	b.Enqueue(Left, Right)

	for _, want := range []Direction{Down, Left} {
		got, ok := b.Pop()
		if !ok || got != want {
			t.Errorf("Pop() = %v, %v; expected %v", got, ok, want)
		}
	}
	if _, ok := b.Pop(); ok {
		t.Error("Pop() on empty buffer should report false")
	}
}

func TestInputBufferRejectsInvalid(t *testing.T) {
	var b InputBuffer
	for _, d := range []Direction{{}, {1, 1}, {0, 2}} {
		if b.Enqueue(d, Right) {
			t.Errorf("Enqueue(%+v) should be rejected", d)
		}
	}
}
