package engine

// ListenerID identifies a registered callback so it can be removed later
type ListenerID int

// Event is a multi-cast event with no arguments.
// GUI buttons and input bindings invoke these without knowing the handlers.
type Event struct {
	listeners []listener[func()]
	nextID    ListenerID
}

type listener[F any] struct {
	id ListenerID
	fn F
}

// AddListener adds a callback to be invoked when the event fires
func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[func()]{id: e.nextID, fn: callback})
	return e.nextID
}

func (e *Event) RemoveListener(id ListenerID) {
	e.listeners = removeListener(e.listeners, id)
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners in registration order
func (e *Event) Invoke() {
	for _, l := range e.listeners {
		l.fn()
	}
}

func (e *Event) ListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[func(T)]
	nextID    ListenerID
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[func(T)]{id: e.nextID, fn: callback})
	return e.nextID
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	e.listeners = removeListener(e.listeners, id)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}

func removeListener[F any](ls []listener[F], id ListenerID) []listener[F] {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}
