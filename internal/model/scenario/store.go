package scenario

// Store exposes scenario lookup for the prompt builder and HTTP handlers.
type Store interface {
	List() []Scenario
	FindByKey(key string) (Scenario, bool)
	Resolve(key string) Scenario
}

// MemoryStore implements Store over a fixed slice. It is never mutated after
// construction, so it is safe to share between requests.
type MemoryStore struct {
	items []Scenario
	index map[string]int
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied scenarios.
// Later duplicates of a key replace earlier ones in lookups.
func NewMemoryStore(items []Scenario) *MemoryStore {
	copied := append([]Scenario(nil), items...)
	index := make(map[string]int, len(copied))
	for i, item := range copied {
		index[item.Key] = i
	}
	return &MemoryStore{items: copied, index: index}
}

// List returns the scenarios in table order.
func (s *MemoryStore) List() []Scenario {
	return append([]Scenario(nil), s.items...)
}

// FindByKey looks up a scenario by key.
func (s *MemoryStore) FindByKey(key string) (Scenario, bool) {
	i, ok := s.index[key]
	if !ok {
		return Scenario{}, false
	}
	return s.items[i], true
}

// Resolve returns the scenario for key, falling back to the general entry.
// A table without a general entry yields a zero Scenario keyed DefaultKey.
func (s *MemoryStore) Resolve(key string) Scenario {
	if item, ok := s.FindByKey(key); ok {
		return item
	}
	if item, ok := s.FindByKey(DefaultKey); ok {
		return item
	}
	return Scenario{Key: DefaultKey}
}
