package platform

import (
	"sync"

	"github.com/thoreinstein/workspace/internal/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrKindAlreadyRegistered is returned when a kind is registered twice.
	ErrKindAlreadyRegistered = errors.New("client kind already registered")

	// ErrNilFactory is returned when registering a nil Factory.
	ErrNilFactory = errors.New("nil store factory")
)

// Registry is the dispatch table from client kind to store factory.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// Register adds the factory for kind.
// Unsupported kinds return an *UnknownClientError.
func (r *Registry) Register(kind Kind, f Factory) error {
	if !kind.Valid() {
		return &UnknownClientError{Name: string(kind)}
	}
	if f == nil {
		return ErrNilFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return errors.Wrapf(ErrKindAlreadyRegistered, "%s", kind)
	}
	r.factories[kind] = f
	return nil
}

// Lookup returns the factory for kind.
// Kinds without a factory return an *UnknownClientError.
func (r *Registry) Lookup(kind Kind) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[kind]
	if !ok {
		return nil, &UnknownClientError{Name: string(kind)}
	}
	return f, nil
}

// Open looks up kind and constructs its Store.
func (r *Registry) Open(kind Kind, opts Options) (Store, error) {
	f, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return f(opts)
}

// Kinds returns the registered kinds in the order of [Kinds].
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kind, 0, len(r.factories))
	for _, k := range Kinds() {
		if _, ok := r.factories[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
