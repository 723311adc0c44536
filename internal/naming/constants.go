package naming

// Bean names and declared types
const (
	// DefaultCacheBeanName is the well-known bean name a region declaration
	// falls back to when its cache-ref attribute is absent or blank.
	DefaultCacheBeanName = "gemfire-cache"

	// PoolPropertyName is the property a pool-ref attribute binds to.
	PoolPropertyName = "pool"

	// SimpleObjectSizerType is the declared-type name of the built-in sizer
	// used by memory-based eviction when no custom sizer is declared.
	SimpleObjectSizerType = "SimpleObjectSizer"
)

// Element local names of the client region namespace
const (
	ElementClientCache   = "client-cache"
	ElementClientRegion  = "client-region"
	ElementCacheListener = "cache-listener"
	ElementKeyInterest   = "key-interest"
	ElementRegexInterest = "regex-interest"
	ElementEviction      = "eviction"
	ElementObjectSizer   = "object-sizer"
	ElementDiskStore     = "disk-store"
	ElementDiskDir       = "disk-dir"
	ElementBean          = "bean"
)

// Attribute local names of the client region namespace
const (
	AttrID           = "id"
	AttrName         = "name"
	AttrDataPolicy   = "data-policy"
	AttrPoolName     = "pool-name"
	AttrPoolRef      = "pool-ref"
	AttrPersistent   = "persistent"
	AttrCacheRef     = "cache-ref"
	AttrDurable      = "durable"
	AttrResultPolicy = "result-policy"
	AttrKey          = "key"
	AttrKeyRef       = "key-ref"
	AttrPattern      = "pattern"
	AttrRef          = "ref"
	AttrType         = "type"
	AttrAction       = "action"
	AttrMaximum      = "maximum"
	AttrLocation     = "location"
	AttrMaxSize      = "max-size"
	AttrSynchronous  = "synchronous-writes"
	AttrAutoCompact  = "auto-compact"
	AttrMaxOplogSize = "max-oplog-size"
	AttrTimeInterval = "time-interval"
	AttrQueueSize    = "queue-size"
)

// Version gates
const (
	// MinPersistentMajor and MinPersistentMinor form the minimum product
	// version required for persistent client regions.
	MinPersistentMajor = 6
	MinPersistentMinor = 5
)

// Well-known property keys consumed by cache drivers
const (
	PropertyName            = "name"
	PropertyLocators        = "locators"
	PropertyClusterName     = "cluster-name"
	PropertyDurableClientID = "durable-client-id"
	PropertyConnectTimeout  = "connect-timeout-ms"
	PropertyUnisocket       = "unisocket"
)

// Grid connection defaults
const (
	// DefaultGridPort is appended to locator addresses given without a port.
	DefaultGridPort = 5701
	// DefaultClusterName is used when the properties carry no cluster-name.
	DefaultClusterName = "dev"
	// DefaultConnectTimeoutMs bounds the initial cluster connection attempt.
	DefaultConnectTimeoutMs = 3000
)

// EmptyCacheDocument is the declarative resource loaded into a freshly
// created cache when the factory is given none.
const EmptyCacheDocument = `<client-cache/>`
