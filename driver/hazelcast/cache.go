package hazelcast

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"
	hz "github.com/hazelcast/hazelcast-go-client"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
	"github.com/gemgrid/gridconfig/xmlconfig"
)

// gridCache exposes one Hazelcast client as a generic client cache.
// Regions ride on distributed maps and are shared by name.
type gridCache struct {
	client *hz.Client
	caps   v1.Capabilities
	log    logr.Logger

	mu      sync.Mutex
	closed  bool
	regions map[string]*mapRegion
}

var _ client.ClientCache = &gridCache{}

func newGridCache(hzClient *hz.Client, caps v1.Capabilities, log logr.Logger) *gridCache {
	return &gridCache{
		client:  hzClient,
		caps:    caps,
		log:     log,
		regions: map[string]*mapRegion{},
	}
}

func (c *gridCache) Name() string { return c.client.Name() }

func (c *gridCache) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed || !c.client.Running()
}

// Close releases the regions and shuts the client down. Further region
// requests fail; closing again is a no-op.
func (c *gridCache) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	regions := make([]*mapRegion, 0, len(c.regions))
	for _, r := range c.regions {
		regions = append(regions, r)
	}
	c.regions = map[string]*mapRegion{}
	c.mu.Unlock()

	for _, r := range regions {
		if err := r.Close(ctx); err != nil {
			c.log.V(1).Info("region close failed during cache close",
				"region", r.Name(), "error", err.Error())
		}
	}
	return c.client.Shutdown(ctx)
}

// EnsureRegion returns the live region for def, creating it on first use.
// Map layout, eviction and persistence are owned by the cluster; locally
// declared attributes are reported but not pushed.
func (c *gridCache) EnsureRegion(ctx context.Context, def *v1.RegionDefinition) (client.Region, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("cache %q is closed", c.Name())
	}
	if r, ok := c.regions[def.Name]; ok {
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	m, err := c.client.GetMap(ctx, def.Name)
	if err != nil {
		return nil, err
	}
	c.reportClusterOwnedAttributes(def)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("cache %q is closed", c.Name())
	}
	if r, ok := c.regions[def.Name]; ok {
		return r, nil
	}
	r := newMapRegion(def.Name, m, c.log)
	c.regions[def.Name] = r
	return r, nil
}

func (c *gridCache) reportClusterOwnedAttributes(def *v1.RegionDefinition) {
	if !c.log.V(1).Enabled() {
		return
	}
	if policy, ok := def.Policy.Value(); ok {
		c.log.V(1).Info("region data policy is applied by the cluster",
			"region", def.Name, "policy", string(policy))
	}
	if def.Attributes.HasEviction() {
		c.log.V(1).Info("region eviction is configured on the cluster",
			"region", def.Name, "algorithm", string(def.Attributes.Eviction.Algorithm))
	}
	if def.Attributes.HasDiskStore() {
		c.log.V(1).Info("region disk store is configured on the cluster",
			"region", def.Name, "dirs", len(def.Attributes.DiskStore.Dirs))
	}
}

// LoadDeclarative translates a client-cache document and assembles every
// region it declares. Declared types and references resolve through the
// active type resolver, so a hosting container installed by the cache
// factory can satisfy them.
func (c *gridCache) LoadDeclarative(ctx context.Context, r io.Reader) error {
	pc := xmlconfig.NewParserContext(c.caps, c.log)
	doc, err := xmlconfig.ParseClientCache(r, pc)
	if err != nil {
		return err
	}
	if err := pc.Err(); err != nil {
		return err
	}
	for _, def := range doc.Regions {
		if err := c.assembleRegion(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func (c *gridCache) assembleRegion(ctx context.Context, def *v1.RegionDefinition) error {
	region, err := c.EnsureRegion(ctx, def)
	if err != nil {
		return err
	}
	for i, ref := range def.Listeners {
		obj, err := resolveDeclared(ref)
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
				key, err = resolveDeclared(in.Key)
				if err != nil {
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

// resolveDeclared resolves a declarative value. References go through the
// active type resolver by name, so host beans are found when a container
// is installed and registered types answer otherwise.
func resolveDeclared(ref v1.ValueRef) (interface{}, error) {
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
