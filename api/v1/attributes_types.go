package v1

// EvictionAlgorithm enumerates how a region decides which entries to evict.
type EvictionAlgorithm string

const (
	EvictionAlgorithmNone      EvictionAlgorithm = "NONE"
	EvictionAlgorithmLRUEntry  EvictionAlgorithm = "LRU_ENTRY"
	EvictionAlgorithmLRUMemory EvictionAlgorithm = "LRU_MEMORY"
	EvictionAlgorithmLRUHeap   EvictionAlgorithm = "LRU_HEAP"
)

// EvictionAction enumerates what happens to an entry picked for eviction.
type EvictionAction string

const (
	EvictionActionNone           EvictionAction = "NONE"
	EvictionActionLocalDestroy   EvictionAction = "LOCAL_DESTROY"
	EvictionActionOverflowToDisk EvictionAction = "OVERFLOW_TO_DISK"
)

// EvictionAttributes mirrors the eviction sub-element of a region.
type EvictionAttributes struct {
	Algorithm EvictionAlgorithm
	Action    EvictionAction
	// Maximum is the eviction threshold: entry count for LRU_ENTRY,
	// megabytes for LRU_MEMORY. Zero means the provider default.
	Maximum int
	// ObjectSizer measures entry sizes for memory based eviction.
	ObjectSizer ValueRef
}

// DiskDir is one directory a disk store may write to.
type DiskDir struct {
	Location string
	// MaxSizeMB caps the space used under Location. Zero means unbounded.
	MaxSizeMB int
}

// DiskStoreAttributes mirrors the disk-store sub-element of a region.
type DiskStoreAttributes struct {
	SynchronousWrites  bool
	AutoCompact        bool
	MaxOplogSizeMB     int
	TimeIntervalMillis int
	QueueSize          int
	Dirs               []DiskDir
}

// RegionAttributes collects the optional tuning sub-elements of a region.
// A region definition always carries one, possibly empty.
type RegionAttributes struct {
	Eviction  *EvictionAttributes
	DiskStore *DiskStoreAttributes
}

// HasEviction reports whether an eviction element was declared.
func (a RegionAttributes) HasEviction() bool { return a.Eviction != nil }

// HasDiskStore reports whether a disk-store element was declared.
func (a RegionAttributes) HasDiskStore() bool { return a.DiskStore != nil }
