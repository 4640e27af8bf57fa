package objects

import (
	"context"
	"log/slog"
)

// Manager ties a Recorder, a Store and a Scheduler to one Surface. It is
// the API a canvas exposes for reusable page objects such as running
// headers and footers.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	surface Surface
	store   *Store
	rec     *Recorder
	sched   *Scheduler
	log     *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for session and placement diagnostics. By
// default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager returns a Manager driving s.
func NewManager(s Surface, opts ...Option) *Manager {
	m := &Manager{
		surface: s,
		store:   NewStore(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.rec = NewRecorder(s, m.store, m.log)
	m.sched = NewScheduler(s, m.store, m.log)
	return m
}

// OpenObject starts recording a new object and returns its id. Drawing
// operations issued until the matching CloseObject go into the object
// instead of the current page.
func (m *Manager) OpenObject() ObjectID {
	return m.rec.Begin()
}

// ReopenObject resumes recording into the closed object id.
func (m *Manager) ReopenObject(id ObjectID) error {
	return m.rec.BeginNested(id)
}

// CloseObject ends the innermost recording session and returns the id of
// the object it recorded.
func (m *Manager) CloseObject() (ObjectID, error) {
	return m.rec.End()
}

// AddObject places object id according to placement, one of "add", "all",
// "odd", "even", "next", "nextodd" or "nexteven". An empty placement means
// "all".
func (m *Manager) AddObject(id ObjectID, placement string) error {
	p, err := ParsePolicy(placement)
	if err != nil {
		return err
	}
	return m.sched.Register(id, p, m.surface.CurrentPage())
}

// StopObject ends the placement of object id; see Scheduler.Stop. Unknown
// ids are ignored.
func (m *Manager) StopObject(id ObjectID) {
	m.sched.Stop(id, m.surface.CurrentPage())
}

// OnNewPage must be called by the page-advance path while the page being
// left is still the current one.
func (m *Manager) OnNewPage() {
	if page := m.surface.CurrentPage(); page > 0 {
		m.sched.Sweep(page)
	}
}

// CloseOpen ends every open recording session, innermost first, so that
// the live buffer is back on the page. It returns an UnclosedSessionsError
// naming the sessions it closed, or nil if there were none.
func (m *Manager) CloseOpen() error {
	if m.rec.Depth() == 0 {
		return nil
	}
	ids := m.rec.OpenIDs()
	for m.rec.Depth() > 0 {
		m.rec.End()
	}
	m.log.LogAttrs(context.Background(), slog.LevelWarn, "recording sessions force-closed",
		slog.Int("count", len(ids)))
	return &UnclosedSessionsError{IDs: ids}
}

// OnFinalize must be called before the document is serialized. Sessions
// still open are closed first by CloseOpen; its error is returned after the
// final sweep has been done.
func (m *Manager) OnFinalize() error {
	err := m.CloseOpen()
	m.sched.Finalize(m.surface.CurrentPage())
	return err
}

// Depth returns the number of open recording sessions.
func (m *Manager) Depth() int {
	return m.rec.Depth()
}

// Recording returns the finalized recording of object id.
func (m *Manager) Recording(id ObjectID) (Recording, error) {
	return m.store.Get(id)
}

// Active returns the ids of objects with a live placement.
func (m *Manager) Active() []ObjectID {
	return m.sched.Active()
}
