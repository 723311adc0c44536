package v1

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateRegionDefinition checks a definition for the mistakes a driver
// cannot be expected to survive. It returns the first problem found.
func ValidateRegionDefinition(def *RegionDefinition) error {
	if def == nil {
		return errors.New("region definition is nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		return errors.New("region name must not be blank")
	}
	if def.PoolName != "" && def.PoolRef != "" {
		return fmt.Errorf("region %s declares both pool-name and pool-ref", def.Name)
	}
	for i, l := range def.Listeners {
		if err := validateListenerRef(l); err != nil {
			return fmt.Errorf("region %s listener %d: %w", def.Name, i, err)
		}
	}
	for i, in := range def.Interests {
		if err := validateInterest(in); err != nil {
			return fmt.Errorf("region %s interest %d: %w", def.Name, i, err)
		}
	}
	if err := validateAttributes(def.Attributes); err != nil {
		return fmt.Errorf("region %s: %w", def.Name, err)
	}
	return nil
}

func validateListenerRef(l ValueRef) error {
	if l.Ref == "" && l.TypeName == "" {
		return errors.New("listener needs a ref or a type")
	}
	if l.Ref != "" && l.TypeName != "" {
		return errors.New("listener declares both ref and type")
	}
	return nil
}

func validateInterest(in InterestDefinition) error {
	switch in.Kind {
	case InterestKey:
		if in.Key.IsZero() {
			return errors.New("key interest needs a key or key-ref")
		}
	case InterestRegex:
		if !in.Key.IsLiteral() {
			return errors.New("regex interest needs a pattern")
		}
	default:
		return fmt.Errorf("unknown interest kind %q", in.Kind)
	}
	switch in.ResultPolicy {
	case "", ResultPolicyNone, ResultPolicyKeys, ResultPolicyKeysValues:
	default:
		return fmt.Errorf("unknown result policy %q", in.ResultPolicy)
	}
	return nil
}

func validateAttributes(a RegionAttributes) error {
	if a.Eviction != nil {
		if a.Eviction.Maximum < 0 {
			return errors.New("eviction maximum must not be negative")
		}
		if a.Eviction.ObjectSizer.Ref != "" && a.Eviction.ObjectSizer.TypeName != "" {
			return errors.New("object sizer declares both ref and type")
		}
	}
	if a.DiskStore != nil {
		for _, d := range a.DiskStore.Dirs {
			if strings.TrimSpace(d.Location) == "" {
				return errors.New("disk-dir location must not be blank")
			}
			if d.MaxSizeMB < 0 {
				return errors.New("disk-dir max-size must not be negative")
			}
		}
	}
	return nil
}
