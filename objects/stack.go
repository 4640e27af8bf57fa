package objects

// session is one entry of the session stack: the snapshot taken when the
// session was opened, and the object the session records into.
type session struct {
	id       ObjectID
	snapshot BufferSnapshot
}

// SessionStack is the LIFO stack of open recording sessions.
type SessionStack struct {
	items []session
}

func (st *SessionStack) push(id ObjectID, snap BufferSnapshot) {
	st.items = append(st.items, session{id: id, snapshot: snap})
}

func (st *SessionStack) pop() (session, error) {
	n := len(st.items)
	if n == 0 {
		return session{}, &EmptyStackError{}
	}
	top := st.items[n-1]
	st.items[n-1] = session{}
	st.items = st.items[:n-1]
	return top, nil
}

// Top returns the id of the innermost open session.
func (st *SessionStack) Top() (ObjectID, bool) {
	if len(st.items) == 0 {
		return 0, false
	}
	return st.items[len(st.items)-1].id, true
}

// Depth returns the number of open sessions.
func (st *SessionStack) Depth() int {
	return len(st.items)
}

// IDs lists the open sessions from innermost to outermost.
func (st *SessionStack) IDs() []ObjectID {
	ids := make([]ObjectID, 0, len(st.items))
	for i := len(st.items) - 1; i >= 0; i-- {
		ids = append(ids, st.items[i].id)
	}
	return ids
}
