package objects

import (
	"context"
	"log/slog"
)

type entry struct {
	id        ObjectID
	placement Placement
	placed    map[int]bool
}

// Scheduler keeps the placement policy of every active object and splices
// recordings into page buffers when their pages are due.
//
// Placement is lazy: a page receives its objects when it is left, either
// through Sweep at a page boundary, through Stop, or through Finalize for
// the last page.
type Scheduler struct {
	surface Surface
	store   *Store
	order   []ObjectID
	active  map[ObjectID]*entry
	log     *slog.Logger
}

// NewScheduler returns a scheduler reading recordings from store.
func NewScheduler(s Surface, store *Store, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		surface: s,
		store:   store,
		active:  make(map[ObjectID]*entry),
		log:     log,
	}
}

// Register attaches policy p to object id, relative to currentPage.
// Registering an already active object replaces its placement but keeps
// track of the pages it was already spliced into.
func (sc *Scheduler) Register(id ObjectID, p Policy, currentPage int) error {
	if !sc.store.Has(id) {
		return &UnknownObjectError{ID: id}
	}
	pl := NewPlacement(p, currentPage)
	if e, ok := sc.active[id]; ok {
		e.placement = pl
	} else {
		sc.active[id] = &entry{id: id, placement: pl, placed: make(map[int]bool)}
		sc.order = append(sc.order, id)
	}
	sc.log.LogAttrs(context.Background(), slog.LevelDebug, "object placement registered",
		slog.Int("id", int(id)), slog.String("policy", p.String()), slog.Int("start", pl.StartPage))
	return nil
}

// Stop ends the placement of object id. If the object is due on
// currentPage and has not been placed there yet, it is placed first. The
// object and its recording are removed afterwards. Unknown ids are ignored.
func (sc *Scheduler) Stop(id ObjectID, currentPage int) {
	e, ok := sc.active[id]
	if ok && e.placement.Due(currentPage) {
		sc.place(e, currentPage)
	}
	sc.drop(id)
	sc.store.Remove(id)
}

// Sweep places every active object that is due on page. Single-shot
// placements are consumed once their page has been reached.
func (sc *Scheduler) Sweep(page int) {
	for _, id := range append([]ObjectID(nil), sc.order...) {
		e := sc.active[id]
		if e.placement.Due(page) {
			if !sc.place(e, page) {
				continue
			}
		}
		if e.placement.expired(page) {
			sc.drop(id)
			sc.store.Remove(id)
		}
	}
}

// Finalize performs the last sweep on page and discards every remaining
// placement together with its recording.
func (sc *Scheduler) Finalize(page int) {
	if page > 0 {
		sc.Sweep(page)
	}
	for _, id := range sc.order {
		sc.store.Remove(id)
	}
	sc.order = nil
	sc.active = make(map[ObjectID]*entry)
}

// Active returns the ids with a live placement, in registration order.
func (sc *Scheduler) Active() []ObjectID {
	return append([]ObjectID(nil), sc.order...)
}

// Placement returns the placement of an active object.
func (sc *Scheduler) Placement(id ObjectID) (Placement, bool) {
	e, ok := sc.active[id]
	if !ok {
		return Placement{}, false
	}
	return e.placement, true
}

// place splices the recording of e into page. It reports false when the
// recording has disappeared from the store, in which case the entry is
// dropped.
func (sc *Scheduler) place(e *entry, page int) bool {
	if page <= 0 || e.placed[page] {
		return true
	}
	rec, err := sc.store.Get(e.id)
	if err != nil {
		sc.log.LogAttrs(context.Background(), slog.LevelWarn, "placed object has no recording",
			slog.Int("id", int(e.id)))
		sc.drop(e.id)
		return false
	}
	sc.surface.SetBuffer(page, rec.Content, true)
	e.placed[page] = true
	sc.log.LogAttrs(context.Background(), slog.LevelDebug, "object placed",
		slog.Int("id", int(e.id)), slog.Int("page", page))
	return true
}

func (sc *Scheduler) drop(id ObjectID) {
	if _, ok := sc.active[id]; !ok {
		return
	}
	delete(sc.active, id)
	for i, o := range sc.order {
		if o == id {
			sc.order = append(sc.order[:i], sc.order[i+1:]...)
			break
		}
	}
}
