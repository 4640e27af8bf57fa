package objects

import "sort"

// ObjectID identifies a recorded object. IDs start at 1 and are never
// reused by the Manager that allocated them.
type ObjectID int

// Recording is the finalized content of an object.
type Recording struct {
	Content    []byte
	AnchorPage int
	State      State
}

// Store maps object ids to their finalized recordings.
type Store struct {
	recs map[ObjectID]Recording
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{recs: make(map[ObjectID]Recording)}
}

// Store inserts rec under id, replacing any previous recording. The content
// is copied.
func (s *Store) Store(id ObjectID, rec Recording) {
	rec.Content = clone(rec.Content)
	s.recs[id] = rec
}

// Get returns the recording stored under id. The returned content is a copy
// and may be modified by the caller.
func (s *Store) Get(id ObjectID) (Recording, error) {
	rec, ok := s.recs[id]
	if !ok {
		return Recording{}, &UnknownObjectError{ID: id}
	}
	rec.Content = clone(rec.Content)
	return rec, nil
}

// Has reports whether a recording exists for id.
func (s *Store) Has(id ObjectID) bool {
	_, ok := s.recs[id]
	return ok
}

// Remove deletes the recording for id. Removing an unknown id does nothing.
func (s *Store) Remove(id ObjectID) {
	delete(s.recs, id)
}

// Len returns the number of stored recordings.
func (s *Store) Len() int {
	return len(s.recs)
}

// IDs returns the stored ids in increasing order.
func (s *Store) IDs() []ObjectID {
	ids := make([]ObjectID, 0, len(s.recs))
	for id := range s.recs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
