package xmlconfig

import (
	"fmt"
	"io"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	n "github.com/gemgrid/gridconfig/internal/naming"
)

// CacheDocument is the result of translating one declarative cache
// configuration document.
type CacheDocument struct {
	Regions []*v1.RegionDefinition
}

// ParseClientCache reads a client-cache document from r. A document that
// does not decode at all fails immediately; per-region problems accumulate
// on pc so one pass reports them together.
func ParseClientCache(r io.Reader, pc *ParserContext) (*CacheDocument, error) {
	root, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if root.Name() != n.ElementClientCache {
		return nil, fmt.Errorf("expected a %s document, got %s", n.ElementClientCache, root.Name())
	}

	doc := &CacheDocument{}
	for i := range root.Children {
		child := &root.Children[i]
		switch child.Name() {
		case n.ElementClientRegion:
			doc.Regions = append(doc.Regions, ParseClientRegion(child, pc))
		default:
			if pc.Log.V(1).Enabled() {
				pc.Log.V(1).Info("ignoring top level element", "element", child.Name())
			}
		}
	}
	return doc, nil
}
