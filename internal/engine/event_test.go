package engine

import "testing"

func TestEventInvokesInOrder(t *testing.T) {
	var e Event
	var order []int
	e.AddListener(func() { order = append(order, 1) })
	e.AddListener(func() { order = append(order, 2) })
	e.AddListener(nil)

	e.Invoke()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Unexpected invocation order %v", order)
	}
	if e.ListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.ListenerCount())
	}
}

func TestEventRemoveListener(t *testing.T) {
	var e Event
	calls := 0
	id := e.AddListener(func() { calls++ })
	e.AddListener(func() { calls += 10 })

	e.RemoveListener(id)
	e.Invoke()

	if calls != 10 {
		t.Errorf("Removed listener still fired, calls=%d", calls)
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[float32]
	var got float32
	e.AddListener(func(v float32) { got = v })

	e.Invoke(2.5)

	if got != 2.5 {
		t.Errorf("Expected 2.5, got %v", got)
	}

	e.RemoveAllListeners()
	if e.ListenerCount() != 0 {
		t.Error("RemoveAllListeners should clear listeners")
	}
}
