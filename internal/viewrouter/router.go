package viewrouter

import (
	"sync"

	"go.uber.org/zap"
)

// WriteMode selects how a fragment write interacts with history.
type WriteMode int

const (
	// Push adds a history entry, used for transitions the site initiates.
	Push WriteMode = iota
	// Replace overwrites the current entry, used to correct bad fragments.
	Replace
)

func (m WriteMode) String() string {
	if m == Replace {
		return "replace"
	}
	return "push"
}

// FragmentStore is the address fragment the router reads and writes.
// Fragments carry their leading '#'.
type FragmentStore interface {
	Fragment() string
	SetFragment(fragment string, mode WriteMode)
	// Watch registers fn for fragment changes the router did not cause directly.
	// Stores may also echo the router's own writes; the router tolerates both.
	Watch(fn func(fragment string)) (cancel func())
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for fragment corrections.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithInitial sets the view held before Start resolves the fragment.
func WithInitial(v View) Option {
	return func(r *Router) {
		if v.Valid() {
			r.current = v
		}
	}
}

type subscriber struct {
	id int
	fn func(View)
}

// Router is the current-view state machine. It never holds its lock while calling
// the store or subscribers, so either may call back into the router.
type Router struct {
	store  FragmentStore
	logger *zap.Logger

	mu      sync.Mutex
	current View
	started bool
	cancel  func()
	subs    []subscriber
	nextID  int
}

// New returns a router bound to store. Call Start to read the initial fragment.
func New(store FragmentStore, opts ...Option) *Router {
	r := &Router{
		store:   store,
		logger:  zap.NewNop(),
		current: Default,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start resolves the store's fragment, corrects it when needed and begins watching
// for external changes. Calling Start twice has no further effect.
func (r *Router) Start() View {
	r.mu.Lock()
	if r.started {
		current := r.current
		r.mu.Unlock()
		return current
	}
	r.started = true
	r.mu.Unlock()

	r.follow(r.store.Fragment(), "initial")

	cancel := r.store.Watch(func(fragment string) {
		r.follow(fragment, "external")
	})
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	return r.Current()
}

// Stop detaches the router from its store.
func (r *Router) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.started = false
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Current returns the active view.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetView performs an internal transition. An id outside the view set is ignored
// and reported with false. Otherwise the state changes, subscribers are notified
// and the fragment is pushed when it does not already match.
func (r *Router) SetView(v View) bool {
	if !v.Valid() {
		r.logger.Debug("ignoring unknown view", zap.String("view", string(v)))
		return false
	}
	if !r.transition(v) {
		return true
	}
	if r.store.Fragment() != v.Fragment() {
		r.store.SetFragment(v.Fragment(), Push)
	}
	return true
}

// Subscribe registers fn for view changes and returns a function that removes it.
func (r *Router) Subscribe(fn func(View)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, s := range r.subs {
				if s.id == id {
					r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// follow handles the initial and external paths: resolve, transition, and replace
// the fragment if it was not already canonical.
func (r *Router) follow(fragment, source string) {
	v := Resolve(fragment)
	if !r.transition(v) {
		return
	}
	if fragment != v.Fragment() {
		r.logger.Debug("correcting fragment",
			zap.String("source", source),
			zap.String("fragment", fragment),
			zap.String("view", string(v)),
		)
		r.store.SetFragment(v.Fragment(), Replace)
	}
}

// transition moves to v and notifies subscribers when the view changed. It reports
// whether v is still current afterwards; a subscriber may have moved elsewhere, in
// which case that nested transition already owns the fragment.
func (r *Router) transition(v View) bool {
	r.mu.Lock()
	if r.current == v {
		r.mu.Unlock()
		return true
	}
	r.current = v
	subs := append([]subscriber(nil), r.subs...)
	r.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
	return r.Current() == v
}
