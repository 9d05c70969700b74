package pointer

// Manager tracks held pointers and owns the input of the running session.
// It is not safe for concurrent use.
type Manager struct {
	order   []ID
	samples map[ID]Event
	state   SessionState

	current Input
	removed map[Arity]Input
	// lastRemoved is the most recently frozen input of any arity.
	lastRemoved Input

	sessionPeak      int
	lastSessionCount int
	lastEvent        Event
}

// NewManager returns a manager with no pointers held.
func NewManager() *Manager {
	return &Manager{
		samples: make(map[ID]Event),
		removed: make(map[Arity]Input, 2),
	}
}

// Handle applies e and reports whether it was accepted.
func (m *Manager) Handle(e Event) bool {
	switch e.Type {
	case Down:
		return m.PointerDown(e)
	case Move:
		return m.PointerMove(e)
	case Up:
		return m.PointerUp(e)
	default:
		return false
	}
}

// PointerDown adds a pointer. A pointer that is already held is rejected.
func (m *Manager) PointerDown(e Event) bool {
	if _, held := m.samples[e.ID]; held {
		return false
	}
	e.Type = Down
	m.lastEvent = e
	m.order = append(m.order, e.ID)
	m.samples[e.ID] = e

	count := len(m.order)
	if count > m.sessionPeak {
		m.sessionPeak = count
	}

	switch count {
	case 1:
		m.current = NewSinglePointerInput(e)
	case 2:
		m.current = NewDualPointerInput(m.samples[m.order[0]], m.samples[m.order[1]], e)
	}
	m.state = stateFor(count)
	return true
}

// PointerMove updates a held pointer.
func (m *Manager) PointerMove(e Event) bool {
	if _, held := m.samples[e.ID]; !held {
		return false
	}
	e.Type = Move
	m.lastEvent = e
	m.samples[e.ID] = e

	if m.current != nil && m.current.Tracks(e.ID) {
		m.current.update(e)
	}
	return true
}

// PointerUp releases a held pointer. The event is applied to the current
// input before the pointer is dropped.
func (m *Manager) PointerUp(e Event) bool {
	if _, held := m.samples[e.ID]; !held {
		return false
	}
	e.Type = Up
	m.lastEvent = e

	lostTracked := false
	if m.current != nil && m.current.Tracks(e.ID) {
		m.current.update(e)
		lostTracked = true
	}
	m.remove(e.ID)

	count := len(m.order)
	switch {
	case count == 0:
		if m.current != nil {
			m.removed[m.current.Arity()] = m.current
			m.lastRemoved = m.current
		}
		m.current = nil
		m.lastSessionCount = min(m.sessionPeak, 2)
		m.sessionPeak = 0
	case count >= 2 && lostTracked:
		m.current = NewDualPointerInput(m.samples[m.order[0]], m.samples[m.order[1]], e)
	}
	m.state = stateFor(count)
	return true
}

func (m *Manager) remove(id ID) {
	delete(m.samples, id)
	for i, held := range m.order {
		if held == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// State returns the session state.
func (m *Manager) State() SessionState { return m.state }

// PointerCount returns the number of held pointers.
func (m *Manager) PointerCount() int { return len(m.order) }

// Pointers returns the held pointers in the order they went down.
func (m *Manager) Pointers() []ID {
	ids := make([]ID, len(m.order))
	copy(ids, m.order)
	return ids
}

// Input returns the running input if it has the given arity.
func (m *Manager) Input(arity Arity) Input {
	if m.current == nil || m.current.Arity() != arity {
		return nil
	}
	return m.current
}

// SinglePointerInput returns the running single-pointer input, or nil.
func (m *Manager) SinglePointerInput() *SinglePointerInput {
	in, _ := m.current.(*SinglePointerInput)
	return in
}

// DualPointerInput returns the running dual-pointer input, or nil.
func (m *Manager) DualPointerInput() *DualPointerInput {
	in, _ := m.current.(*DualPointerInput)
	return in
}

// LastRemovedInput returns the input of the latest finished session of the
// given arity. It stays available until a later session of that arity ends.
func (m *Manager) LastRemovedInput(arity Arity) Input {
	return m.removed[arity]
}

// LastRemoved returns the input of the latest finished session.
func (m *Manager) LastRemoved() Input {
	return m.lastRemoved
}

// LastSessionPointerCount returns the most pointers held at once during the
// latest finished session, capped at two.
func (m *Manager) LastSessionPointerCount() int {
	return m.lastSessionCount
}

// LastEvent returns the latest accepted event.
func (m *Manager) LastEvent() Event {
	return m.lastEvent
}
