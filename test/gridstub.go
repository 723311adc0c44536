package test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
	"github.com/gemgrid/gridconfig/xmlconfig"
)

// Provider errors the stub driver hands out so suites can exercise error
// translation without a cluster.
var (
	ErrStubOffline  = errors.New("stub cluster offline")
	ErrStubBadQuery = errors.New("stub query rejected")
)

// StubDriver is an in memory driver for suites that drive the full cache
// lifecycle without a cluster. Its cache translates declarative documents
// for real, so tests observe the same region assembly a production driver
// performs.
type StubDriver struct {
	caps v1.Capabilities
	log  logr.Logger

	// CreateErr fails cache creation when set.
	CreateErr error
	// LoadErr seeds the created cache so its declarative load fails.
	LoadErr error

	mu          sync.Mutex
	createCalls int
	cache       *StubCache
	conn        *StubConnection
}

var (
	_ client.Driver          = &StubDriver{}
	_ client.ErrorTranslator = &StubDriver{}
)

func NewStubDriver(caps v1.Capabilities, log logr.Logger) *StubDriver {
	return &StubDriver{caps: caps, log: log}
}

func (d *StubDriver) Capabilities() v1.Capabilities { return d.caps }

func (d *StubDriver) CreateCache(ctx context.Context, props client.Properties) (client.ClientCache, client.ClusterConnection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.createCalls++
	if d.CreateErr != nil {
		return nil, nil, d.CreateErr
	}
	d.cache = NewStubCache(props.GetOr("name", "stub-cache"), d.caps, d.log)
	d.cache.LoadErr = d.LoadErr
	d.conn = &StubConnection{connected: true}
	return d.cache, d.conn, nil
}

func (d *StubDriver) CreateCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.createCalls
}

// Cache returns the most recently created cache, or nil.
func (d *StubDriver) Cache() *StubCache {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache
}

// Connection returns the most recently created connection, or nil.
func (d *StubDriver) Connection() *StubConnection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn
}

func (d *StubDriver) Kind(err error) client.ErrorKind {
	switch {
	case err == nil:
		return client.KindNone
	case errors.Is(err, ErrStubOffline):
		return client.KindConnection
	case errors.Is(err, ErrStubBadQuery):
		return client.KindIllegalArgument
	default:
		return client.KindNone
	}
}

func (d *StubDriver) TranslateQuery(err error) client.ErrorKind {
	if errors.Is(err, ErrStubBadQuery) {
		return client.KindQueryInvalid
	}
	return client.KindSystem
}

// StubCache keeps regions in memory and remembers the definitions they
// were created from.
type StubCache struct {
	name string
	caps v1.Capabilities
	log  logr.Logger

	// LoadErr fails LoadDeclarative before any translation when set.
	LoadErr error
	// EnsureErr fails region creation when set.
	EnsureErr error
	// CloseErr fails Close when set.
	CloseErr error

	mu      sync.Mutex
	closed  bool
	regions map[string]*StubRegion
	defs    map[string]*v1.RegionDefinition
	order   []string
}

var _ client.ClientCache = &StubCache{}

func NewStubCache(name string, caps v1.Capabilities, log logr.Logger) *StubCache {
	return &StubCache{
		name:    name,
		caps:    caps,
		log:     log,
		regions: map[string]*StubRegion{},
		defs:    map[string]*v1.RegionDefinition{},
	}
}

func (c *StubCache) Name() string { return c.name }

func (c *StubCache) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *StubCache) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CloseErr != nil {
		return c.CloseErr
	}
	c.closed = true
	return nil
}

func (c *StubCache) EnsureRegion(ctx context.Context, def *v1.RegionDefinition) (client.Region, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("cache %q is closed", c.name)
	}
	if c.EnsureErr != nil {
		return nil, c.EnsureErr
	}
	if r, ok := c.regions[def.Name]; ok {
		return r, nil
	}
	r := &StubRegion{name: def.Name}
	c.regions[def.Name] = r
	c.defs[def.Name] = def
	c.order = append(c.order, def.Name)
	return r, nil
}

// LoadDeclarative translates the document for real and assembles the
// regions it declares. Declared types and references resolve through the
// active type resolver, exactly as a production driver resolves them.
func (c *StubCache) LoadDeclarative(ctx context.Context, r io.Reader) error {
	if c.LoadErr != nil {
		return c.LoadErr
	}
	pc := xmlconfig.NewParserContext(c.caps, c.log)
	doc, err := xmlconfig.ParseClientCache(r, pc)
	if err != nil {
		return err
	}
	if err := pc.Err(); err != nil {
		return err
	}
	for _, def := range doc.Regions {
		if err := c.assemble(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func (c *StubCache) assemble(ctx context.Context, def *v1.RegionDefinition) error {
	region, err := c.EnsureRegion(ctx, def)
	if err != nil {
		return err
	}
	for i, ref := range def.Listeners {
		obj, err := resolveRef(ref)
		if err != nil {
			return fmt.Errorf("region %s listener %d: %w", def.Name, i, err)
		}
		listener, ok := obj.(client.CacheListener)
		if !ok {
			return fmt.Errorf("region %s listener %d: %T is not a cache listener", def.Name, i, obj)
		}
		if err := region.AttachListener(ctx, listener); err != nil {
			return fmt.Errorf("region %s listener %d: %w", def.Name, i, err)
		}
	}
	if def.HasInterests() {
		for i, in := range def.Interests {
			var key interface{}
			if in.Kind == v1.InterestKey {
				if key, err = resolveRef(in.Key); err != nil {
					return fmt.Errorf("region %s interest %d: %w", def.Name, i, err)
				}
			}
			if err := region.RegisterInterest(ctx, in, key); err != nil {
				return fmt.Errorf("region %s interest %d: %w", def.Name, i, err)
			}
		}
	}
	return nil
}

func resolveRef(ref v1.ValueRef) (interface{}, error) {
	switch {
	case ref.IsRef():
		return client.ResolveType(ref.Ref)
	case ref.IsType():
		return client.ResolveType(ref.TypeName)
	case ref.IsLiteral():
		return ref.Literal, nil
	default:
		return nil, fmt.Errorf("empty reference")
	}
}

// Region returns the live region under name, or nil.
func (c *StubCache) Region(name string) *StubRegion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regions[name]
}

// Definition returns the translated definition the named region was
// created from, or nil.
func (c *StubCache) Definition(name string) *v1.RegionDefinition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defs[name]
}

// RegionNames returns the region names in creation order.
func (c *StubCache) RegionNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

// RegisteredInterest is one interest a stub region accepted.
type RegisteredInterest struct {
	Def v1.InterestDefinition
	Key interface{}
}

// StubRegion records the listeners and interests assembled onto it.
type StubRegion struct {
	name string

	mu        sync.Mutex
	listeners []client.CacheListener
	interests []RegisteredInterest
	closed    bool
}

var _ client.Region = &StubRegion{}

func (r *StubRegion) Name() string { return r.name }

func (r *StubRegion) RegisterInterest(ctx context.Context, def v1.InterestDefinition, key interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interests = append(r.interests, RegisteredInterest{Def: def, Key: key})
	return nil
}

func (r *StubRegion) AttachListener(ctx context.Context, listener client.CacheListener) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
	return nil
}

func (r *StubRegion) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Emit delivers event to every attached listener in attach order.
func (r *StubRegion) Emit(event client.EntryEvent) {
	r.mu.Lock()
	listeners := append([]client.CacheListener(nil), r.listeners...)
	r.mu.Unlock()
	for _, l := range listeners {
		l.OnEntryEvent(event)
	}
}

func (r *StubRegion) Listeners() []client.CacheListener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.CacheListener(nil), r.listeners...)
}

func (r *StubRegion) Interests() []RegisteredInterest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RegisteredInterest(nil), r.interests...)
}

func (r *StubRegion) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// StubConnection tracks the connection state transitions the factory
// drives during teardown.
type StubConnection struct {
	// DisconnectErr fails Disconnect when set.
	DisconnectErr error

	mu        sync.Mutex
	connected bool
	released  bool
}

var _ client.ClusterConnection = &StubConnection{}

func (c *StubConnection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *StubConnection) ReleaseResources() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
}

func (c *StubConnection) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.DisconnectErr != nil {
		return c.DisconnectErr
	}
	c.connected = false
	return nil
}

func (c *StubConnection) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}
