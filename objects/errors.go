package objects

import (
	"strings"

	"github.com/tinywasm/fmt"
)

// UnknownObjectError is returned when an object id has no finalized
// recording, either because it was never closed or because it has already
// been consumed.
type UnknownObjectError struct {
	ID ObjectID
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("objects: unknown object %d", int(e.ID))
}

// EmptyStackError is returned by a close request without an open recording
// session.
type EmptyStackError struct{}

func (e *EmptyStackError) Error() string {
	return "objects: no open recording session"
}

// InvalidPolicyError reports a placement keyword that is not one of "add",
// "all", "odd", "even", "next", "nextodd" or "nexteven".
type InvalidPolicyError struct {
	Name string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("objects: invalid placement \"%s\"", e.Name)
}

// UnclosedSessionsError is returned by Manager.OnFinalize when recording
// sessions were still open. The sessions have already been closed when the
// error is returned; IDs lists them from innermost to outermost.
type UnclosedSessionsError struct {
	IDs []ObjectID
}

func (e *UnclosedSessionsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Convert(int(id)).String()
	}
	return fmt.Sprintf("objects: %d recording session(s) left open, force-closed [%s]", len(e.IDs), strings.Join(ids, " "))
}
