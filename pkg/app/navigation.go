package app

// CycleFocusForward moves focus to the next widget in declaration
// order, wrapping past the end.
func (m *Model) CycleFocusForward() {
	if len(m.order) == 0 {
		return
	}
	idx := m.focusedIndex()
	m.focused = m.order[(idx+1)%len(m.order)]
}

// CycleFocusBackward moves focus to the previous widget, wrapping past
// the start.
func (m *Model) CycleFocusBackward() {
	if len(m.order) == 0 {
		return
	}
	idx := m.focusedIndex()
	m.focused = m.order[(idx-1+len(m.order))%len(m.order)]
}

// FocusWidget sets focus directly. Unknown IDs leave focus unchanged.
func (m *Model) FocusWidget(id string) {
	for _, known := range m.order {
		if known == id {
			m.focused = id
			return
		}
	}
}

// Focused returns the ID of the currently focused widget.
func (m *Model) Focused() string {
	return m.focused
}

func (m *Model) focusedIndex() int {
	for i, id := range m.order {
		if id == m.focused {
			return i
		}
	}
	return 0
}
