package grid

// EventType names the state mutations observers can subscribe to.
type EventType string

const (
	// EventSort fires after SortBy, ToggleSort, and ClearSort.
	EventSort EventType = "sort"
	// EventSearch fires after Search.
	EventSearch EventType = "search"
	// EventPaginate fires after GoToPage, NextPage, PrevPage, and SetPageSize.
	EventPaginate EventType = "paginate"
	// EventColumnToggle fires after ToggleColumn, ShowColumn, and HideColumn.
	EventColumnToggle EventType = "columnToggle"
	// EventReset fires after Reset.
	EventReset EventType = "reset"
)

// Listener receives the post-mutation state snapshot.
type Listener[T any] func(Snapshot[T])

// publisher is a per-instance observer registry keyed by event type.
// Listeners are tracked under opaque ids so removal does not depend on
// function comparability; subscribe hands the caller a disposer.
type publisher[T any] struct {
	nextID    int
	listeners map[EventType]map[int]Listener[T]
}

func newPublisher[T any]() *publisher[T] {
	return &publisher[T]{listeners: make(map[EventType]map[int]Listener[T])}
}

// subscribe registers fn for the event type and returns a disposer that
// removes it. Disposing twice is harmless.
func (p *publisher[T]) subscribe(t EventType, fn Listener[T]) func() {
	if fn == nil {
		return func() {}
	}
	set, ok := p.listeners[t]
	if !ok {
		set = make(map[int]Listener[T])
		p.listeners[t] = set
	}
	id := p.nextID
	p.nextID++
	set[id] = fn

	return func() {
		delete(set, id)
	}
}

// emit synchronously invokes every listener registered for t.
func (p *publisher[T]) emit(t EventType, snap Snapshot[T]) {
	for _, fn := range p.listeners[t] {
		fn(snap)
	}
}

// clear drops every listener for every event type.
func (p *publisher[T]) clear() {
	p.listeners = make(map[EventType]map[int]Listener[T])
}
