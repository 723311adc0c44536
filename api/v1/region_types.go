package v1

// DataPolicy enumerates how a region stores and distributes its entries.
type DataPolicy string

const (
	DataPolicyEmpty               DataPolicy = "EMPTY"
	DataPolicyNormal              DataPolicy = "NORMAL"
	DataPolicyReplicate           DataPolicy = "REPLICATE"
	DataPolicyPersistentReplicate DataPolicy = "PERSISTENT_REPLICATE"
	DataPolicyPartition           DataPolicy = "PARTITION"
)

// Scope enumerates distribution scopes. Client regions always end up LOCAL.
type Scope string

const (
	ScopeLocal            Scope = "LOCAL"
	ScopeDistributedAck   Scope = "DISTRIBUTED_ACK"
	ScopeDistributedNoAck Scope = "DISTRIBUTED_NO_ACK"
	ScopeGlobal           Scope = "GLOBAL"
)

// ValueRef points at a collaborator either by bean reference, by declared
// type name, or by inline literal. At most one of the fields is set.
type ValueRef struct {
	// Ref is the name of a bean registered with the hosting container.
	Ref string
	// TypeName is the name of a declared type constructible by the
	// active type resolver.
	TypeName string
	// Literal is an inline value, e.g. an interest key or regex pattern.
	Literal string
}

func (v ValueRef) IsRef() bool     { return v.Ref != "" }
func (v ValueRef) IsType() bool    { return v.TypeName != "" }
func (v ValueRef) IsLiteral() bool { return v.Literal != "" }
func (v ValueRef) IsZero() bool    { return v == ValueRef{} }

// RegionDefinition is the bean-construction descriptor produced from one
// client-region element. It is immutable once returned by the translator.
type RegionDefinition struct {
	// Name of the region. Falls back to the element id when the name
	// attribute is absent.
	Name string

	// CacheRef names the cache bean the region belongs to. Defaults to
	// the well-known cache bean name when the attribute is blank.
	CacheRef string

	// PoolName carries the pool-name attribute verbatim.
	PoolName string

	// PoolRef names a pool bean to be wired into the region's pool slot.
	PoolRef string

	// Scope is always ScopeLocal for client regions.
	Scope Scope

	// Policy is the derived data policy together with how it was decided.
	Policy PolicySetting

	// Attributes collects eviction and disk storage settings. Always
	// present, possibly empty.
	Attributes RegionAttributes

	// Listeners holds cache listener references in document order.
	Listeners []ValueRef

	// Interests holds interest registrations in document order. The slice
	// is nil when the region element had no child elements at all and
	// non-nil, possibly empty, otherwise.
	Interests []InterestDefinition
}

// HasInterests reports whether an interests collection should be wired at
// all, preserving the distinction between absent and empty.
func (r *RegionDefinition) HasInterests() bool {
	return r.Interests != nil
}
