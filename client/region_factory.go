package client

import (
	"context"
	"fmt"
	"reflect"

	"github.com/codeallergy/glue"
	"github.com/go-logr/logr"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

// RegionFactoryBean materializes one region definition against the shared
// cache: it ensures the region exists, attaches the declared listeners in
// order and registers the declared interests in order. The hosting
// container publishes the live region under the definition's name.
type RegionFactoryBean struct {
	def     *v1.RegionDefinition
	cache   ClientCache
	locator *BeanLocator
	log     logr.Logger

	region Region
}

var (
	_ glue.FactoryBean      = &RegionFactoryBean{}
	_ glue.InitializingBean = &RegionFactoryBean{}
	_ glue.DisposableBean   = &RegionFactoryBean{}
	_ glue.NamedBean        = &RegionFactoryBean{}
)

func NewRegionFactoryBean(def *v1.RegionDefinition, cache ClientCache, locator *BeanLocator, log logr.Logger) *RegionFactoryBean {
	return &RegionFactoryBean{def: def, cache: cache, locator: locator, log: log}
}

func (b *RegionFactoryBean) PostConstruct() error {
	if b.region != nil {
		return nil
	}
	if b.cache == nil {
		return fmt.Errorf("region %q has no cache to attach to", b.defName())
	}
	if err := v1.ValidateRegionDefinition(b.def); err != nil {
		return err
	}

	ctx := context.Background()
	region, err := b.cache.EnsureRegion(ctx, b.def)
	if err != nil {
		return err
	}

	for i, ref := range b.def.Listeners {
		listener, err := b.resolveListener(ref)
		if err != nil {
			return fmt.Errorf("region %s listener %d: %w", b.def.Name, i, err)
		}
		if err := region.AttachListener(ctx, listener); err != nil {
			return fmt.Errorf("region %s listener %d: %w", b.def.Name, i, err)
		}
	}

	if b.def.HasInterests() {
		for i, in := range b.def.Interests {
			var key interface{}
			if in.Kind == v1.InterestKey {
				key, err = b.locator.Resolve(in.Key)
				if err != nil {
					return fmt.Errorf("region %s interest %d: %w", b.def.Name, i, err)
				}
			}
			if err := region.RegisterInterest(ctx, in, key); err != nil {
				return fmt.Errorf("region %s interest %d: %w", b.def.Name, i, err)
			}
		}
	}

	b.region = region
	b.log.Info("region ready", "region", region.Name(),
		"listeners", len(b.def.Listeners), "interests", len(b.def.Interests))
	return nil
}

func (b *RegionFactoryBean) resolveListener(ref v1.ValueRef) (CacheListener, error) {
	obj, err := b.locator.Resolve(ref)
	if err != nil {
		return nil, err
	}
	listener, ok := obj.(CacheListener)
	if !ok {
		return nil, fmt.Errorf("%T is not a cache listener", obj)
	}
	return listener, nil
}

// Destroy releases the region's local resources. Safe to call more than
// once.
func (b *RegionFactoryBean) Destroy() error {
	if b.region == nil {
		return nil
	}
	region := b.region
	b.region = nil
	return region.Close(context.Background())
}

func (b *RegionFactoryBean) Object() (interface{}, error) {
	if b.region == nil {
		return nil, nil
	}
	return b.region, nil
}

func (b *RegionFactoryBean) ObjectType() reflect.Type {
	if b.region != nil {
		return reflect.TypeOf(b.region)
	}
	return reflect.TypeOf((*Region)(nil)).Elem()
}

func (b *RegionFactoryBean) ObjectName() string { return b.defName() }

func (b *RegionFactoryBean) Singleton() bool { return true }

func (b *RegionFactoryBean) BeanName() string { return b.defName() }

func (b *RegionFactoryBean) defName() string {
	if b.def == nil {
		return ""
	}
	return b.def.Name
}
