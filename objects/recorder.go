package objects

import (
	"context"
	"log/slog"
)

// Recorder records drawing operations into objects. Opening a session
// redirects the surface's live buffer into a scratch buffer; closing it
// stores what was drawn and puts the previous buffer and graphics state
// back exactly as they were.
//
// Sessions nest strictly: End always closes the innermost open session.
type Recorder struct {
	surface Surface
	store   *Store
	stack   SessionStack
	lastID  ObjectID
	log     *slog.Logger
}

// NewRecorder returns a recorder that stores finished recordings in store.
func NewRecorder(s Surface, store *Store, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Recorder{surface: s, store: store, log: log}
}

// Begin opens a session for a new, empty object and returns its id.
func (r *Recorder) Begin() ObjectID {
	r.lastID++
	id := r.lastID
	r.open(id, nil)
	return id
}

// BeginNested reopens the finalized object id so that more operations can
// be appended to it. The session closes back onto the same id.
func (r *Recorder) BeginNested(id ObjectID) error {
	rec, err := r.store.Get(id)
	if err != nil {
		return err
	}
	r.open(id, rec.Content)
	return nil
}

func (r *Recorder) open(id ObjectID, content []byte) {
	r.stack.push(id, Capture(r.surface))
	r.surface.SetRecording(true)
	r.surface.SetBuffer(0, content, false)
	r.log.LogAttrs(context.Background(), slog.LevelDebug, "object session opened",
		slog.Int("id", int(id)), slog.Int("depth", r.stack.Depth()))
}

// End closes the innermost session, stores its content and restores the
// live buffer and graphics state captured when the session was opened.
func (r *Recorder) End() (ObjectID, error) {
	top, err := r.stack.pop()
	if err != nil {
		return 0, err
	}
	r.store.Store(top.id, Recording{
		Content:    r.surface.Buffer(0),
		AnchorPage: top.snapshot.Page,
		State:      r.surface.CaptureState(),
	})
	top.snapshot.Restore(r.surface)
	r.log.LogAttrs(context.Background(), slog.LevelDebug, "object session closed",
		slog.Int("id", int(top.id)), slog.Int("depth", r.stack.Depth()))
	return top.id, nil
}

// Depth returns the number of open sessions.
func (r *Recorder) Depth() int {
	return r.stack.Depth()
}

// Open reports whether a session is open.
func (r *Recorder) Open() bool {
	return r.stack.Depth() > 0
}

// OpenIDs lists the open sessions from innermost to outermost.
func (r *Recorder) OpenIDs() []ObjectID {
	return r.stack.IDs()
}
