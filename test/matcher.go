package test

import (
	"fmt"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

// RegionValues is the flat expectation a translated region definition is
// matched against.
type RegionValues struct {
	Name      string
	CacheRef  string
	Scope     v1.Scope
	Policy    string
	Listeners int
	Interests int
}

func EqualRegion(expected *RegionValues) types.GomegaMatcher {
	return &RegionEqual{
		Expected: expected,
	}
}

type RegionEqual struct {
	Expected *RegionValues
}

func (matcher RegionEqual) Match(actual interface{}) (success bool, err error) {
	def, ok := actual.(*v1.RegionDefinition)
	if !ok {
		return false, fmt.Errorf("type of %v should be *v1.RegionDefinition", actual)
	}
	if def.Name != matcher.Expected.Name {
		return false, fmt.Errorf(
			"expected Name is %s but actual is %s", matcher.Expected.Name, def.Name)
	}
	if def.CacheRef != matcher.Expected.CacheRef {
		return false, fmt.Errorf(
			"expected CacheRef is %s but actual is %s", matcher.Expected.CacheRef, def.CacheRef)
	}
	if def.Scope != matcher.Expected.Scope {
		return false, fmt.Errorf(
			"expected Scope is %s but actual is %s", matcher.Expected.Scope, def.Scope)
	}
	if def.Policy.String() != matcher.Expected.Policy {
		return false, fmt.Errorf(
			"expected Policy is %s but actual is %s", matcher.Expected.Policy, def.Policy)
	}
	if len(def.Listeners) != matcher.Expected.Listeners {
		return false, fmt.Errorf(
			"expected %d listeners but actual is %d", matcher.Expected.Listeners, len(def.Listeners))
	}
	if len(def.Interests) != matcher.Expected.Interests {
		return false, fmt.Errorf(
			"expected %d interests but actual is %d", matcher.Expected.Interests, len(def.Interests))
	}
	return true, nil
}

func (matcher RegionEqual) FailureMessage(actual interface{}) (message string) {
	return format.Message(actual, "to equal", matcher.Expected)
}

func (matcher RegionEqual) NegatedFailureMessage(actual interface{}) (message string) {
	return format.Message(actual, "not to equal", matcher.Expected)
}
