package xmlconfig

import (
	v1 "github.com/gemgrid/gridconfig/api/v1"
	n "github.com/gemgrid/gridconfig/internal/naming"
	"github.com/gemgrid/gridconfig/internal/util"
)

var evictionAlgorithms = map[string]v1.EvictionAlgorithm{
	string(v1.EvictionAlgorithmNone):      v1.EvictionAlgorithmNone,
	string(v1.EvictionAlgorithmLRUEntry):  v1.EvictionAlgorithmLRUEntry,
	string(v1.EvictionAlgorithmLRUMemory): v1.EvictionAlgorithmLRUMemory,
	string(v1.EvictionAlgorithmLRUHeap):   v1.EvictionAlgorithmLRUHeap,
}

var evictionActions = map[string]v1.EvictionAction{
	string(v1.EvictionActionNone):           v1.EvictionActionNone,
	string(v1.EvictionActionLocalDestroy):   v1.EvictionActionLocalDestroy,
	string(v1.EvictionActionOverflowToDisk): v1.EvictionActionOverflowToDisk,
}

// parseEviction reads the optional eviction child of a region element.
// The second return value reports whether the element was present, which
// is what decides a data policy downgrade, independent of its contents.
func parseEviction(el *Element, region string, pc *ParserContext) (*v1.EvictionAttributes, bool) {
	ev := el.Child(n.ElementEviction)
	if ev == nil {
		return nil, false
	}

	attrs := &v1.EvictionAttributes{
		Maximum: util.ParseIntOr(ev.Attr(n.AttrMaximum), 0),
	}
	if raw := ev.Attr(n.AttrType); util.HasText(raw) {
		if alg, ok := evictionAlgorithms[normalizeToken(raw)]; ok {
			attrs.Algorithm = alg
		} else {
			pc.Errorf(ev, region, "unknown eviction type %q", raw)
		}
	}
	if raw := ev.Attr(n.AttrAction); util.HasText(raw) {
		if act, ok := evictionActions[normalizeToken(raw)]; ok {
			attrs.Action = act
		} else {
			pc.Errorf(ev, region, "unknown eviction action %q", raw)
		}
	}
	if sz := ev.Child(n.ElementObjectSizer); sz != nil {
		ref := parseRefOrNested(sz, n.AttrRef)
		if ref.IsZero() {
			pc.Errorf(sz, region, "object-sizer needs a ref attribute or a nested bean")
		}
		attrs.ObjectSizer = ref
	}
	return attrs, true
}
