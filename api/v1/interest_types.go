package v1

// InterestKind distinguishes key interests from regex interests.
type InterestKind string

const (
	InterestKey   InterestKind = "KEY"
	InterestRegex InterestKind = "REGEX"
)

// InterestResultPolicy controls what the server sends back when an
// interest is registered.
type InterestResultPolicy string

const (
	ResultPolicyNone       InterestResultPolicy = "NONE"
	ResultPolicyKeys       InterestResultPolicy = "KEYS"
	ResultPolicyKeysValues InterestResultPolicy = "KEYS_VALUES"
)

// OrDefault resolves the empty policy to KEYS_VALUES.
func (p InterestResultPolicy) OrDefault() InterestResultPolicy {
	if p == "" {
		return ResultPolicyKeysValues
	}
	return p
}

// InterestDefinition describes one interest registration of a client
// region. For key interests Key holds a literal or a bean reference; for
// regex interests the pattern rides in the same slot as a literal.
type InterestDefinition struct {
	Kind         InterestKind
	Key          ValueRef
	Durable      bool
	ResultPolicy InterestResultPolicy
}
