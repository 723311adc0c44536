package xmlconfig

import (
	"strings"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	n "github.com/gemgrid/gridconfig/internal/naming"
	"github.com/gemgrid/gridconfig/internal/util"
)

var dataPolicies = map[string]v1.DataPolicy{
	string(v1.DataPolicyEmpty):               v1.DataPolicyEmpty,
	string(v1.DataPolicyNormal):              v1.DataPolicyNormal,
	string(v1.DataPolicyReplicate):           v1.DataPolicyReplicate,
	string(v1.DataPolicyPersistentReplicate): v1.DataPolicyPersistentReplicate,
	string(v1.DataPolicyPartition):           v1.DataPolicyPartition,
}

var resultPolicies = map[string]v1.InterestResultPolicy{
	string(v1.ResultPolicyNone):       v1.ResultPolicyNone,
	string(v1.ResultPolicyKeys):       v1.ResultPolicyKeys,
	string(v1.ResultPolicyKeysValues): v1.ResultPolicyKeysValues,
}

// normalizeToken maps attribute spellings like "persistent-replicate" onto
// the canonical enum form.
func normalizeToken(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	return strings.ReplaceAll(s, "-", "_")
}

// ParseClientRegion translates one client-region element into a region
// definition. Problems are recorded on pc and translation carries on, so
// the returned definition is never nil even for a faulty element.
func ParseClientRegion(el *Element, pc *ParserContext) *v1.RegionDefinition {
	name := el.Attr(n.AttrName)
	if !util.HasText(name) {
		name = el.Attr(n.AttrID)
	}

	def := &v1.RegionDefinition{
		Name: name,
		// The region must not take part in peer distribution, so the
		// scope is fixed to LOCAL no matter what the element says.
		Scope:    v1.ScopeLocal,
		PoolName: el.Attr(n.AttrPoolName),
		PoolRef:  el.Attr(n.AttrPoolRef),
	}

	var policy v1.PolicySetting
	if raw := el.Attr(n.AttrDataPolicy); util.HasText(raw) {
		if p, ok := dataPolicies[normalizeToken(raw)]; ok {
			policy = policy.Derive(p)
		} else {
			pc.Errorf(el, name, "unknown data-policy %q", raw)
		}
	}

	if util.ParseBool(el.Attr(n.AttrPersistent)) {
		caps := pc.Capabilities
		if caps.SupportsPersistentRegions() {
			policy = v1.FrozenPolicy(v1.DataPolicyPersistentReplicate)
		} else {
			pc.Errorf(el, name,
				"persistent client regions require %s %s onwards, current version is [%s]",
				productName(caps), caps.PersistentMinimum(), caps.Version)
		}
	}

	if ref := el.Attr(n.AttrCacheRef); util.HasText(ref) {
		def.CacheRef = ref
	} else {
		def.CacheRef = n.DefaultCacheBeanName
	}

	eviction, evictionSet := parseEviction(el, name, pc)
	diskStore, diskStoreSet := parseDiskStore(el, name, pc)
	def.Attributes = v1.RegionAttributes{Eviction: eviction, DiskStore: diskStore}

	// Eviction and overflow are incompatible with replicated policies, so
	// declaring either downgrades the policy unless persistence froze it.
	if evictionSet || diskStoreSet {
		policy = policy.Derive(v1.DataPolicyNormal)
	}
	def.Policy = policy

	var interests []v1.InterestDefinition
	for i := range el.Children {
		child := &el.Children[i]
		switch child.Name() {
		case n.ElementCacheListener:
			def.Listeners = append(def.Listeners, parseListener(child, name, pc))
		case n.ElementKeyInterest:
			interests = append(interests, parseKeyInterest(child, name, pc))
		case n.ElementRegexInterest:
			interests = append(interests, parseRegexInterest(child, name, pc))
		default:
			// Unrecognized child names are skipped to stay forward
			// compatible with newer schema revisions.
			if pc.Log.V(1).Enabled() {
				pc.Log.V(1).Info("ignoring child element", "region", name, "element", child.Name())
			}
		}
	}

	// The interests collection is wired only when the element had child
	// elements at all. A region with children that are all listeners still
	// gets an empty collection; a childless region gets none.
	if len(el.Children) > 0 {
		if interests == nil {
			interests = []v1.InterestDefinition{}
		}
		def.Interests = interests
	}

	return def
}

func productName(caps v1.Capabilities) string {
	if caps.Product != "" {
		return caps.Product
	}
	return "grid version"
}

func parseListener(el *Element, region string, pc *ParserContext) v1.ValueRef {
	ref := parseRefOrNested(el, n.AttrRef)
	if ref.IsZero() {
		pc.Errorf(el, region, "cache-listener needs a ref attribute or a nested bean")
	}
	return ref
}

func parseKeyInterest(el *Element, region string, pc *ParserContext) v1.InterestDefinition {
	def := v1.InterestDefinition{Kind: v1.InterestKey}
	parseCommonInterestAttrs(el, region, &def, pc)

	key := parseRefOrNested(el, n.AttrKeyRef)
	if key.IsZero() {
		if lit := el.Attr(n.AttrKey); util.HasText(lit) {
			key = v1.ValueRef{Literal: lit}
		}
	}
	if key.IsZero() {
		pc.Errorf(el, region, "key-interest needs a key, key-ref or nested bean")
	}
	def.Key = key
	return def
}

func parseRegexInterest(el *Element, region string, pc *ParserContext) v1.InterestDefinition {
	def := v1.InterestDefinition{Kind: v1.InterestRegex}
	parseCommonInterestAttrs(el, region, &def, pc)

	pattern := el.Attr(n.AttrPattern)
	if !util.HasText(pattern) {
		pc.Errorf(el, region, "regex-interest needs a pattern")
	}
	// The pattern rides in the key slot, mirroring how the registration
	// is handed to the grid.
	def.Key = v1.ValueRef{Literal: pattern}
	return def
}

// parseCommonInterestAttrs reads the attributes shared by both interest
// variants before any variant specific fields.
func parseCommonInterestAttrs(el *Element, region string, def *v1.InterestDefinition, pc *ParserContext) {
	def.Durable = util.ParseBool(el.Attr(n.AttrDurable))
	if raw := el.Attr(n.AttrResultPolicy); util.HasText(raw) {
		if p, ok := resultPolicies[normalizeToken(raw)]; ok {
			def.ResultPolicy = p
		} else {
			pc.Errorf(el, region, "unknown result-policy %q", raw)
		}
	}
}

// parseRefOrNested resolves the common "reference or nested declaration"
// pattern: a reference attribute wins, then a nested bean child with a
// type attribute.
func parseRefOrNested(el *Element, refAttr string) v1.ValueRef {
	if ref := el.Attr(refAttr); util.HasText(ref) {
		return v1.ValueRef{Ref: ref}
	}
	if bean := el.Child(n.ElementBean); bean != nil {
		if tn := bean.Attr(n.AttrType); util.HasText(tn) {
			return v1.ValueRef{TypeName: tn}
		}
		if ref := bean.Attr(n.AttrRef); util.HasText(ref) {
			return v1.ValueRef{Ref: ref}
		}
	}
	if tn := el.Attr(n.AttrType); util.HasText(tn) {
		return v1.ValueRef{TypeName: tn}
	}
	return v1.ValueRef{}
}
