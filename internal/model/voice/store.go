package voice

// Store exposes the voice catalog for HTTP handlers and services.
type Store interface {
	List() []Option
	FindByID(id string) (Option, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Option
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied voices.
func NewMemoryStore(items []Option) *MemoryStore {
	return &MemoryStore{items: append([]Option(nil), items...)}
}

// List returns a copy of the catalog.
func (s *MemoryStore) List() []Option {
	out := make([]Option, len(s.items))
	copy(out, s.items)
	return out
}

// FindByID looks up a voice by identifier.
func (s *MemoryStore) FindByID(id string) (Option, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Option{}, false
}
