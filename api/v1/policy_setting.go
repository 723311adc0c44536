package v1

import "fmt"

// PolicyState tells how a PolicySetting came to hold its value.
type PolicyState int

const (
	// PolicyUnset means no decision has been made.
	PolicyUnset PolicyState = iota
	// PolicyDerived means the value was inferred from other settings and
	// may still be replaced by a later derivation.
	PolicyDerived
	// PolicyFrozen means the value is final and later derivations must
	// leave it untouched.
	PolicyFrozen
)

// PolicySetting is a DataPolicy together with the state of the decision
// that produced it. The zero value is unset.
type PolicySetting struct {
	state PolicyState
	value DataPolicy
}

// FrozenPolicy returns a setting whose value is final.
func FrozenPolicy(p DataPolicy) PolicySetting {
	return PolicySetting{state: PolicyFrozen, value: p}
}

// DerivedPolicy returns a setting that later derivations may overwrite.
func DerivedPolicy(p DataPolicy) PolicySetting {
	return PolicySetting{state: PolicyDerived, value: p}
}

func (s PolicySetting) State() PolicyState { return s.state }

// IsSet reports whether the setting carries a value.
func (s PolicySetting) IsSet() bool { return s.state != PolicyUnset }

// IsFrozen reports whether later derivations must not change the value.
func (s PolicySetting) IsFrozen() bool { return s.state == PolicyFrozen }

// Value returns the data policy and whether one was decided.
func (s PolicySetting) Value() (DataPolicy, bool) {
	return s.value, s.state != PolicyUnset
}

// Derive returns a setting holding p unless the receiver is frozen, in
// which case the receiver is returned unchanged.
func (s PolicySetting) Derive(p DataPolicy) PolicySetting {
	if s.state == PolicyFrozen {
		return s
	}
	return DerivedPolicy(p)
}

func (s PolicySetting) String() string {
	switch s.state {
	case PolicyFrozen:
		return fmt.Sprintf("frozen(%s)", s.value)
	case PolicyDerived:
		return fmt.Sprintf("derived(%s)", s.value)
	default:
		return "unset"
	}
}
