package client

import (
	"fmt"
	"sync"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

// BeanResolver is the one capability the hosting container must offer:
// looking up a bean by name.
type BeanResolver interface {
	LookupBean(name string) (interface{}, error)
}

// BeanLocator bridges declarative configuration and the hosting
// container. Once bound it resolves bean references, declared type names
// and literals from region definitions.
type BeanLocator struct {
	mu       sync.Mutex
	resolver BeanResolver
	name     string
}

func NewBeanLocator() *BeanLocator {
	return &BeanLocator{}
}

// Bind attaches the locator to the hosting container under name.
func (l *BeanLocator) Bind(resolver BeanResolver, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resolver = resolver
	l.name = name
}

// Name returns the bean name the locator was bound under.
func (l *BeanLocator) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// Resolve turns a ValueRef into the object it points at.
func (l *BeanLocator) Resolve(ref v1.ValueRef) (interface{}, error) {
	switch {
	case ref.IsRef():
		l.mu.Lock()
		resolver := l.resolver
		l.mu.Unlock()
		if resolver == nil {
			return nil, fmt.Errorf("no bean resolver bound, cannot resolve reference %q", ref.Ref)
		}
		return resolver.LookupBean(ref.Ref)
	case ref.IsType():
		return l.ResolveType(ref.TypeName)
	case ref.IsLiteral():
		return ref.Literal, nil
	default:
		return nil, fmt.Errorf("empty reference")
	}
}

// ResolveType implements TypeResolver. Host beans shadow registered
// types, so a declarative type name can be satisfied by the container.
func (l *BeanLocator) ResolveType(name string) (interface{}, error) {
	l.mu.Lock()
	resolver := l.resolver
	l.mu.Unlock()
	if resolver != nil {
		if obj, err := resolver.LookupBean(name); err == nil && obj != nil {
			return obj, nil
		}
	}
	return registry.ResolveType(name)
}

// Destroy unbinds the locator. Safe to call any number of times.
func (l *BeanLocator) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resolver = nil
	l.name = ""
	return nil
}
