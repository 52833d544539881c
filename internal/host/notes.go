package host

import "sync"

// NoteFields is the fixed set of note fields a collection carries.
var NoteFields = []string{
	"server",
	"username",
	"password",
	"website",
	"admin",
	"version",
	"notes",
}

// NoteStore holds per-collection note values in memory. The host is the
// source of truth: windows forward edits here and re-read on push.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[string]map[string]string
}

// NewNoteStore returns an empty store.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[string]map[string]string)}
}

// Set records one field value for a collection. Unknown fields are dropped.
func (s *NoteStore) Set(collection, field, value string) {
	if !knownNoteField(field) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.notes[collection]
	if m == nil {
		m = make(map[string]string)
		s.notes[collection] = m
	}
	m[field] = value
}

// Get returns every note field for a collection, defaulting to empty
// strings for unset fields.
func (s *NoteStore) Get(collection string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(NoteFields))
	for _, field := range NoteFields {
		out[field] = s.notes[collection][field]
	}
	return out
}

// Replace swaps in a full notes map, used when loading a snapshot.
func (s *NoteStore) Replace(notes map[string]map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[string]map[string]string, len(notes))
	for coll, fields := range notes {
		m := make(map[string]string, len(fields))
		for field, value := range fields {
			if knownNoteField(field) {
				m[field] = value
			}
		}
		s.notes[coll] = m
	}
}

func knownNoteField(field string) bool {
	for _, f := range NoteFields {
		if f == field {
			return true
		}
	}
	return false
}
