package xmlconfig

import (
	v1 "github.com/gemgrid/gridconfig/api/v1"
	n "github.com/gemgrid/gridconfig/internal/naming"
	"github.com/gemgrid/gridconfig/internal/util"
)

// parseDiskStore reads the optional disk-store child of a region element.
// Like parseEviction, presence alone signals a data policy downgrade.
func parseDiskStore(el *Element, region string, pc *ParserContext) (*v1.DiskStoreAttributes, bool) {
	ds := el.Child(n.ElementDiskStore)
	if ds == nil {
		return nil, false
	}

	attrs := &v1.DiskStoreAttributes{
		SynchronousWrites:  util.ParseBool(ds.Attr(n.AttrSynchronous)),
		AutoCompact:        util.ParseBool(ds.Attr(n.AttrAutoCompact)),
		MaxOplogSizeMB:     util.ParseIntOr(ds.Attr(n.AttrMaxOplogSize), 0),
		TimeIntervalMillis: util.ParseIntOr(ds.Attr(n.AttrTimeInterval), 0),
		QueueSize:          util.ParseIntOr(ds.Attr(n.AttrQueueSize), 0),
	}

	for i := range ds.Children {
		dir := &ds.Children[i]
		if dir.Name() != n.ElementDiskDir {
			continue
		}
		location := dir.Attr(n.AttrLocation)
		if !util.HasText(location) {
			pc.Errorf(dir, region, "disk-dir needs a location")
			continue
		}
		attrs.Dirs = append(attrs.Dirs, v1.DiskDir{
			Location:  location,
			MaxSizeMB: util.ParseIntOr(dir.Attr(n.AttrMaxSize), 0),
		})
	}
	return attrs, true
}
