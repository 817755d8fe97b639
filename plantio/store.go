package plantio

import (
	"sync"

	"go.uber.org/zap"
)

// Store loads each source once per process and keeps the derived table for
// the rest of the session. Tables returned by Store are shared and must be
// treated as read-only; segment them with Filter and friends, which copy.
type Store struct {
	opts   LoadOptions
	logger *zap.Logger
	load   func(path string, opts LoadOptions) (*Table, error)

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	derived  *Table
	overview *Table
}

// NewStore returns an empty Store. A nil logger disables logging.
func NewStore(opts LoadOptions, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		opts:    opts,
		logger:  logger,
		load:    Load,
		entries: make(map[string]*entry),
	}
}

// Table returns the derived table for path, loading it on first use. A failed
// load is not remembered, so a later call retries.
func (s *Store) Table(path string) (*Table, error) {
	e, err := s.get(path)
	if err != nil {
		return nil, err
	}
	return e.derived, nil
}

// Overview returns the derived table for path with utilization classes set.
func (s *Store) Overview(path string) (*Table, error) {
	e, err := s.get(path)
	if err != nil {
		return nil, err
	}
	return e.overview, nil
}

func (s *Store) get(path string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[path]; ok {
		return e, nil
	}

	t, err := s.load(path, s.opts)
	if err != nil {
		return nil, err
	}
	for col, n := range t.Invalid {
		s.logger.Warn("unparseable cells", zap.String("column", col), zap.Int("count", n))
	}
	for _, d := range Duplicates(t.Records) {
		s.logger.Warn("PRF spelled more than one way",
			zap.String("division", d.Division),
			zap.String("keep", d.Keep),
			zap.Strings("others", d.Others))
	}

	derived := *t
	derived.Records = Derive(t.Records)
	overview := derived
	overview.Records = Classify(derived.Records)

	e := &entry{derived: &derived, overview: &overview}
	s.entries[path] = e
	s.logger.Info("source loaded",
		zap.String("path", path),
		zap.Int("records", len(derived.Records)),
		zap.Int("columns", len(derived.Columns)))
	return e, nil
}
