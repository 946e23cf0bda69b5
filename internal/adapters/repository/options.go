package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxEntries bounds the store; the oldest analyses are evicted first.
func WithMaxEntries(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}
