package platform

import (
	"sort"
	"sync"

	"github.com/jonathan/autofill-core/internal/selectors"
	"go.uber.org/zap"
)

// Location reports the URL of the page currently being processed.
// *dom.Document satisfies it.
type Location interface {
	Href() string
}

// LocationFunc adapts a function to Location.
type LocationFunc func() string

// Href implements Location.
func (f LocationFunc) Href() string { return f() }

// StaticLocation is a fixed URL.
type StaticLocation string

// Href implements Location.
func (s StaticLocation) Href() string { return string(s) }

// Registry maps platform ids to adapter factories and hands out one adapter
// for the current page. It is safe for concurrent use, but memoization
// assumes a single page at a time.
type Registry struct {
	mu        sync.Mutex
	location  Location
	factories map[selectors.PlatformID]Factory
	current   Adapter
	logger    *zap.Logger
}

// NewRegistry creates an empty registry bound to loc.
func NewRegistry(loc Location, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		location:  loc,
		factories: make(map[selectors.PlatformID]Factory),
		logger:    logger,
	}
}

// NewDefaultRegistry creates a registry with every built-in adapter registered.
func NewDefaultRegistry(loc Location, logger *zap.Logger) *Registry {
	r := NewRegistry(loc, logger)
	for id, factory := range DefaultFactories(logger) {
		r.Register(id, factory)
	}
	return r
}

// Register associates id with factory. Registering an id again replaces the
// previous factory.
func (r *Registry) Register(id selectors.PlatformID, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = factory
}

// SetLocation points the registry at a different page.
func (r *Registry) SetLocation(loc Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = loc
}

// DetectPlatform identifies the platform of the current page.
func (r *Registry) DetectPlatform() selectors.PlatformID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detectLocked()
}

func (r *Registry) detectLocked() selectors.PlatformID {
	if r.location == nil {
		return selectors.Generic
	}
	return Detect(r.location.Href())
}

// GetAdapter returns the adapter for the current page. The previous adapter
// is reused while the detected platform is unchanged. Detected platforms
// without a factory get the generic adapter.
func (r *Registry) GetAdapter() (Adapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	detected := r.detectLocked()
	id := detected
	factory, ok := r.factories[id]
	if !ok {
		id = selectors.Generic
		factory, ok = r.factories[id]
		if !ok {
			return nil, &ConfigurationError{Message: "no generic adapter factory registered"}
		}
	}

	if r.current != nil && r.current.PlatformID() == id {
		return r.current, nil
	}

	r.current = factory()
	r.logger.Debug("Created adapter",
		zap.String("detected", string(detected)),
		zap.String("adapter", string(id)))
	return r.current, nil
}

// GetAdapterByID builds a fresh adapter for id without consulting the page.
// The memoized current adapter is left untouched.
func (r *Registry) GetAdapterByID(id selectors.PlatformID) (Adapter, error) {
	r.mu.Lock()
	factory, ok := r.factories[id]
	r.mu.Unlock()
	if !ok {
		return nil, &NotFoundError{Platform: id}
	}
	return factory(), nil
}

// HasDedicatedAdapter reports whether the current page is handled by a
// platform-specific adapter rather than the generic fallback.
func (r *Registry) HasDedicatedAdapter() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.detectLocked()
	if id == selectors.Generic {
		return false
	}
	_, ok := r.factories[id]
	return ok
}

// ListAdapters returns the registered platform ids in sorted order.
func (r *Registry) ListAdapters() []selectors.PlatformID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]selectors.PlatformID, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
