package theme

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownSubscription is returned when unsubscribing an unknown id.
var ErrUnknownSubscription = errors.New("unknown subscription")

// ChangeFunc receives the selection and theme after every successful change.
// It runs while the store serializes writers, so it must not call Set or
// Update itself.
type ChangeFunc func(Selection, Theme)

type subscriber struct {
	seq int
	fn  ChangeFunc
}

// Store holds the current selection and its theme and notifies
// subscribers when it changes.
type Store struct {
	builder *Builder

	// writeMu serializes changes and their notifications.
	writeMu sync.Mutex

	mu        sync.RWMutex
	selection Selection
	current   Theme
	subs      map[string]subscriber
	seq       int
}

// NewStore builds the initial theme from sel.
func NewStore(builder *Builder, sel Selection) (*Store, error) {
	if builder == nil {
		builder = NewBuilder(nil)
	}
	t, err := builder.Build(sel)
	if err != nil {
		return nil, err
	}
	if sel.Palette == "" {
		sel.Palette = PaletteDefault
	}
	return &Store{
		builder:   builder,
		selection: sel,
		current:   t,
		subs:      make(map[string]subscriber),
	}, nil
}

// Current returns the active selection and theme.
func (s *Store) Current() (Selection, Theme) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection, s.current
}

// Set rebuilds the theme for sel. On error the previous state is kept and
// nobody is notified.
func (s *Store) Set(sel Selection) (Theme, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.commit(sel)
}

// Update applies fn to the current selection and stores the result. No other
// change can land between the read and the write.
func (s *Store) Update(fn func(Selection) Selection) (Theme, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	sel, _ := s.Current()
	return s.commit(fn(sel))
}

// commit builds and publishes sel. Caller holds writeMu.
func (s *Store) commit(sel Selection) (Theme, error) {
	t, err := s.builder.Build(sel)
	if err != nil {
		return Theme{}, err
	}
	if sel.Palette == "" {
		sel.Palette = PaletteDefault
	}

	s.mu.Lock()
	s.selection = sel
	s.current = t
	subs := s.orderedSubscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sel, t)
	}
	return t, nil
}

// Subscribe registers fn and returns its subscription id.
func (s *Store) Subscribe(fn ChangeFunc) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.seq++
	s.subs[id] = subscriber{seq: s.seq, fn: fn}
	s.mu.Unlock()
	return id
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[id]; !ok {
		return ErrUnknownSubscription
	}
	delete(s.subs, id)
	return nil
}

// orderedSubscribers returns callbacks in registration order. Caller holds mu.
func (s *Store) orderedSubscribers() []ChangeFunc {
	list := make([]subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		list = append(list, sub)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	fns := make([]ChangeFunc, len(list))
	for i, sub := range list {
		fns[i] = sub.fn
	}
	return fns
}
