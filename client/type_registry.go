package client

import (
	"fmt"
	"sync"

	n "github.com/gemgrid/gridconfig/internal/naming"
)

// TypeResolver constructs collaborator objects, such as listeners and
// sizers, from the type names used in declarative configuration.
type TypeResolver interface {
	ResolveType(name string) (interface{}, error)
}

type typeRegistry struct {
	mu    sync.RWMutex
	ctors map[string]func() interface{}
}

func (r *typeRegistry) register(name string, ctor func() interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
}

func (r *typeRegistry) ResolveType(name string) (interface{}, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("declared type %q is not registered", name)
	}
	return ctor(), nil
}

var registry = &typeRegistry{ctors: map[string]func() interface{}{}}

// RegisterType makes a declared type name constructible. Later
// registrations under the same name win.
func RegisterType(name string, ctor func() interface{}) {
	registry.register(name, ctor)
}

var (
	activeMu sync.Mutex
	active   TypeResolver = registry
)

// UseResolver installs r as the resolver behind declarative type lookups
// and returns the function that puts the previous one back. The cache
// factory installs the bean-aware resolver for the duration of cache
// creation so declarative loads construct types through the host, and
// restores the previous resolver afterwards even when creation fails.
func UseResolver(r TypeResolver) (restore func()) {
	activeMu.Lock()
	prev := active
	active = r
	activeMu.Unlock()
	return func() {
		activeMu.Lock()
		active = prev
		activeMu.Unlock()
	}
}

// ResolveType constructs the named type through the active resolver.
func ResolveType(name string) (interface{}, error) {
	activeMu.Lock()
	r := active
	activeMu.Unlock()
	return r.ResolveType(name)
}

// SimpleObjectSizer is the built-in sizer for memory based eviction. It
// is deliberately rough: precise sizing belongs to the provider.
type SimpleObjectSizer struct{}

func (SimpleObjectSizer) SizeOf(v interface{}) int {
	switch v := v.(type) {
	case nil:
		return 0
	case string:
		return len(v)
	case []byte:
		return len(v)
	case bool:
		return 1
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return 8
	default:
		return len(fmt.Sprint(v))
	}
}

func init() {
	RegisterType(n.SimpleObjectSizerType, func() interface{} { return &SimpleObjectSizer{} })
}
