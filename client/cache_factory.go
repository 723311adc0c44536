package client

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	"github.com/codeallergy/glue"
	"github.com/go-logr/logr"

	n "github.com/gemgrid/gridconfig/internal/naming"
	"github.com/gemgrid/gridconfig/internal/util"
)

// FactoryState is where a CacheFactory is in its lifecycle.
type FactoryState int

const (
	StateUninitialized FactoryState = iota
	StateInitializing
	StateReady
	StateDestroyed
)

func (s FactoryState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateReady:
		return "Ready"
	case StateDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CacheFactory creates and owns the shared client cache handle. It is a
// factory bean: the hosting container asks it for the cache object, and
// drives setup and teardown through the lifecycle methods. The factory is
// single threaded; create runs once at startup, destroy once at shutdown.
type CacheFactory struct {
	driver Driver
	log    logr.Logger

	beanName   string
	properties Properties
	cacheXML   []byte
	resolver   BeanResolver
	locator    *BeanLocator

	state FactoryState
	cache ClientCache
	conn  ClusterConnection
}

var (
	_ glue.FactoryBean      = &CacheFactory{}
	_ glue.InitializingBean = &CacheFactory{}
	_ glue.DisposableBean   = &CacheFactory{}
	_ glue.NamedBean        = &CacheFactory{}
)

func NewCacheFactory(driver Driver, log logr.Logger) *CacheFactory {
	return &CacheFactory{
		driver:   driver,
		log:      log,
		beanName: n.DefaultCacheBeanName,
		cacheXML: []byte(n.EmptyCacheDocument),
		locator:  NewBeanLocator(),
	}
}

// SetBeanName overrides the well-known default name the factory and its
// cache are published under. Blank names are ignored.
func (f *CacheFactory) SetBeanName(name string) {
	if util.HasText(name) {
		f.beanName = name
	}
}

// SetProperties hands the factory the driver properties to merge into the
// cache configuration at create time.
func (f *CacheFactory) SetProperties(p Properties) {
	f.properties = p
}

// SetCacheXML replaces the declarative document loaded into the freshly
// created cache. nil disables the load entirely.
func (f *CacheFactory) SetCacheXML(doc []byte) {
	f.cacheXML = doc
}

// SetBeanResolver attaches the hosting container so declarations can
// reference its beans.
func (f *CacheFactory) SetBeanResolver(r BeanResolver) {
	f.resolver = r
}

func (f *CacheFactory) State() FactoryState { return f.state }

// Cache returns the current handle, nil before the factory is ready.
func (f *CacheFactory) Cache() ClientCache { return f.cache }

// Connection returns the cluster connection owned by the factory, nil
// before the factory is ready.
func (f *CacheFactory) Connection() ClusterConnection { return f.conn }

// Locator exposes the bean locator so region factories resolve their
// references through the same binding.
func (f *CacheFactory) Locator() *BeanLocator { return f.locator }

// PostConstruct connects to the cluster, creates the cache handle and
// loads the declarative configuration into it. A factory that is already
// ready keeps its open cache. Creation failures are returned untouched
// and leave the factory uninitialized with no handle.
func (f *CacheFactory) PostConstruct() (err error) {
	switch f.state {
	case StateReady:
		return nil
	case StateDestroyed:
		return fmt.Errorf("cache factory %q is destroyed", f.beanName)
	}

	f.state = StateInitializing
	defer func() {
		if err != nil {
			f.state = StateUninitialized
		}
	}()

	f.locator.Bind(f.resolver, f.beanName)

	props := f.mergeProperties()

	// Declared types must resolve through the host while the driver
	// creates the cache and applies the declarative document. The
	// previous resolver comes back no matter how creation ends.
	restore := UseResolver(f.locator)
	defer restore()

	ctx := context.Background()
	cache, conn, err := f.driver.CreateCache(ctx, props)
	if err != nil {
		return err
	}
	f.cache, f.conn = cache, conn

	caps := f.driver.Capabilities()
	f.log.Info("created cache", "product", caps.Product, "version", caps.Version.String(), "cache", cache.Name())

	if len(f.cacheXML) > 0 {
		if err := f.loadDeclarative(ctx); err != nil {
			return err
		}
	}

	f.state = StateReady
	return nil
}

func (f *CacheFactory) loadDeclarative(ctx context.Context) error {
	err := f.cache.LoadDeclarative(ctx, bytes.NewReader(f.cacheXML))
	if err == nil {
		f.log.V(1).Info("initialized cache from declarative configuration")
		return nil
	}
	// A half configured cache must not leak out of a failed startup.
	if !f.cache.Closed() {
		if cerr := f.cache.Close(ctx); cerr != nil {
			f.log.Error(cerr, "could not close cache after failed configuration load")
		}
	}
	f.cache, f.conn = nil, nil
	return err
}

// mergeProperties returns the effective driver properties: a deep copy of
// the configured ones, or an empty map when none were set.
func (f *CacheFactory) mergeProperties() Properties {
	return f.properties.Clone()
}

// Destroy tears the cache down: close the handle, release and disconnect
// the cluster connection, unbind the locator. Every step runs even when
// an earlier one fails; failures are collected and returned together.
// Calling Destroy again is harmless.
func (f *CacheFactory) Destroy() error {
	ctx := context.Background()
	errs := make(TeardownErrors, 0, 3)

	if f.cache != nil && !f.cache.Closed() {
		if err := f.cache.Close(ctx); err != nil {
			errs = append(errs, &TeardownError{Step: "close cache", Err: err})
		}
	}
	f.cache = nil

	if f.conn != nil && f.conn.Connected() {
		f.conn.ReleaseResources()
		if err := f.conn.Disconnect(ctx); err != nil {
			errs = append(errs, &TeardownError{Step: "disconnect cluster", Err: err})
		}
	}
	f.conn = nil

	if err := f.locator.Destroy(); err != nil {
		errs = append(errs, &TeardownError{Step: "destroy locator", Err: err})
	}

	f.state = StateDestroyed
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// TranslateAccessError converts a provider error into the generic access
// error taxonomy, or returns nil when no translation applies and the
// original error should be used as is.
func (f *CacheFactory) TranslateAccessError(err error) error {
	tr, ok := f.driver.(ErrorTranslator)
	if !ok {
		return nil
	}
	return TranslateIfPossible(tr, err)
}

// Object returns the cache handle, or nil before the factory is ready.
func (f *CacheFactory) Object() (interface{}, error) {
	if f.cache == nil {
		return nil, nil
	}
	return f.cache, nil
}

// ObjectType is the concrete cache type once one exists, the ClientCache
// interface before that.
func (f *CacheFactory) ObjectType() reflect.Type {
	if f.cache != nil {
		return reflect.TypeOf(f.cache)
	}
	return reflect.TypeOf((*ClientCache)(nil)).Elem()
}

func (f *CacheFactory) ObjectName() string { return f.beanName }

func (f *CacheFactory) Singleton() bool { return true }

func (f *CacheFactory) BeanName() string { return f.beanName }
