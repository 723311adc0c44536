package client

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

func fail(t *testing.T) func(message string, callerSkip ...int) {
	return func(message string, callerSkip ...int) {
		t.Errorf(message)
	}
}

func testLogger() logr.Logger {
	return zapr.NewLogger(zap.NewNop())
}

type registeredInterest struct {
	def v1.InterestDefinition
	key interface{}
}

type fakeRegion struct {
	name              string
	tRegisterInterest func(ctx context.Context, def v1.InterestDefinition, key interface{}) error
	tAttachListener   func(ctx context.Context, listener CacheListener) error
	tClose            func(ctx context.Context) error

	listeners []CacheListener
	interests []registeredInterest
	closed    bool
}

func (r *fakeRegion) Name() string { return r.name }

func (r *fakeRegion) RegisterInterest(ctx context.Context, def v1.InterestDefinition, key interface{}) error {
	if r.tRegisterInterest != nil {
		return r.tRegisterInterest(ctx, def, key)
	}
	r.interests = append(r.interests, registeredInterest{def: def, key: key})
	return nil
}

func (r *fakeRegion) AttachListener(ctx context.Context, listener CacheListener) error {
	if r.tAttachListener != nil {
		return r.tAttachListener(ctx, listener)
	}
	r.listeners = append(r.listeners, listener)
	return nil
}

func (r *fakeRegion) Close(ctx context.Context) error {
	if r.tClose != nil {
		return r.tClose(ctx)
	}
	r.closed = true
	return nil
}

type fakeCache struct {
	name             string
	closed           bool
	tClose           func(ctx context.Context) error
	tEnsureRegion    func(ctx context.Context, def *v1.RegionDefinition) (Region, error)
	tLoadDeclarative func(ctx context.Context, r io.Reader) error

	loadedDocs [][]byte
	regions    map[string]*fakeRegion
}

func (c *fakeCache) Name() string { return c.name }

func (c *fakeCache) Closed() bool { return c.closed }

func (c *fakeCache) Close(ctx context.Context) error {
	if c.tClose != nil {
		return c.tClose(ctx)
	}
	c.closed = true
	return nil
}

func (c *fakeCache) EnsureRegion(ctx context.Context, def *v1.RegionDefinition) (Region, error) {
	if c.tEnsureRegion != nil {
		return c.tEnsureRegion(ctx, def)
	}
	if c.regions == nil {
		c.regions = map[string]*fakeRegion{}
	}
	if r, ok := c.regions[def.Name]; ok {
		return r, nil
	}
	r := &fakeRegion{name: def.Name}
	c.regions[def.Name] = r
	return r, nil
}

func (c *fakeCache) LoadDeclarative(ctx context.Context, r io.Reader) error {
	if c.tLoadDeclarative != nil {
		return c.tLoadDeclarative(ctx, r)
	}
	doc, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.loadedDocs = append(c.loadedDocs, doc)
	return nil
}

type fakeConnection struct {
	connected   bool
	released    bool
	tDisconnect func(ctx context.Context) error
}

func (c *fakeConnection) Connected() bool { return c.connected }

func (c *fakeConnection) ReleaseResources() { c.released = true }

func (c *fakeConnection) Disconnect(ctx context.Context) error {
	if c.tDisconnect != nil {
		return c.tDisconnect(ctx)
	}
	c.connected = false
	return nil
}

type fakeDriver struct {
	caps         v1.Capabilities
	tCreateCache func(ctx context.Context, props Properties) (ClientCache, ClusterConnection, error)

	createCalls int
	lastProps   Properties
	cache       *fakeCache
	conn        *fakeConnection
}

func (d *fakeDriver) Capabilities() v1.Capabilities { return d.caps }

func (d *fakeDriver) CreateCache(ctx context.Context, props Properties) (ClientCache, ClusterConnection, error) {
	d.createCalls++
	d.lastProps = props
	if d.tCreateCache != nil {
		return d.tCreateCache(ctx, props)
	}
	if d.cache == nil {
		d.cache = &fakeCache{name: "fake-cache"}
	}
	if d.conn == nil {
		d.conn = &fakeConnection{connected: true}
	}
	return d.cache, d.conn, nil
}

type fakeTranslatingDriver struct {
	fakeDriver
	tKind           func(err error) ErrorKind
	tTranslateQuery func(err error) ErrorKind
}

func (d *fakeTranslatingDriver) Kind(err error) ErrorKind {
	if d.tKind != nil {
		return d.tKind(err)
	}
	return KindNone
}

func (d *fakeTranslatingDriver) TranslateQuery(err error) ErrorKind {
	if d.tTranslateQuery != nil {
		return d.tTranslateQuery(err)
	}
	return KindSystem
}

type mapResolver map[string]interface{}

func (m mapResolver) LookupBean(name string) (interface{}, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("bean %q not found", name)
}

type recordingListener struct {
	events []EntryEvent
}

func (l *recordingListener) OnEntryEvent(e EntryEvent) {
	l.events = append(l.events, e)
}
