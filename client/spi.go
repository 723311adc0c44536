package client

import (
	"context"
	"io"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

// EntryOp tells a listener what happened to an entry.
type EntryOp string

const (
	EntryAdded   EntryOp = "ADDED"
	EntryUpdated EntryOp = "UPDATED"
	EntryRemoved EntryOp = "REMOVED"
	EntryEvicted EntryOp = "EVICTED"
)

// EntryEvent is delivered to cache listeners attached to a region.
type EntryEvent struct {
	Region   string
	Op       EntryOp
	Key      interface{}
	Value    interface{}
	OldValue interface{}
}

// CacheListener receives entry events from a region it is attached to.
type CacheListener interface {
	OnEntryEvent(event EntryEvent)
}

// ObjectSizer measures entries for memory based eviction.
type ObjectSizer interface {
	SizeOf(v interface{}) int
}

// Region is one live client region inside a cache.
type Region interface {
	Name() string

	// RegisterInterest subscribes the region to server side changes for
	// the given interest. For key interests key carries the resolved key
	// object; for regex interests it is nil and the pattern is read from
	// the definition.
	RegisterInterest(ctx context.Context, def v1.InterestDefinition, key interface{}) error

	// AttachListener wires a listener for entry events. Listeners attach
	// in call order.
	AttachListener(ctx context.Context, listener CacheListener) error

	// Close releases the local resources of the region.
	Close(ctx context.Context) error
}

// ClientCache is the shared cache handle produced by a driver. The cache
// factory owns it exclusively; everything else only borrows it.
type ClientCache interface {
	Name() string
	Closed() bool
	Close(ctx context.Context) error

	// EnsureRegion returns the region described by def, creating it on
	// first use.
	EnsureRegion(ctx context.Context, def *v1.RegionDefinition) (Region, error)

	// LoadDeclarative applies a declarative client-cache document to the
	// cache, creating the regions and wiring it declares.
	LoadDeclarative(ctx context.Context, r io.Reader) error
}

// ClusterConnection is the cache's link to the cluster, torn down
// separately from the cache handle itself.
type ClusterConnection interface {
	Connected() bool

	// ReleaseResources drops per-thread and socket resources ahead of a
	// disconnect.
	ReleaseResources()

	Disconnect(ctx context.Context) error
}

// Driver adapts one caching product to the configuration layer. The rest
// of the module treats the product as an opaque collaborator behind this
// interface.
type Driver interface {
	Capabilities() v1.Capabilities

	// CreateCache connects to the cluster described by props and returns
	// the cache handle together with its cluster connection.
	CreateCache(ctx context.Context, props Properties) (ClientCache, ClusterConnection, error)
}
