package v1

import (
	"fmt"
	"strconv"
	"strings"

	n "github.com/gemgrid/gridconfig/internal/naming"
)

// Version is a product version reduced to the parts the schema gates on.
type Version struct {
	Major int
	Minor int
}

// ParseVersion reads "major.minor" and tolerates a trailing patch segment.
func ParseVersion(s string) (Version, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 3)
	if len(parts) == 0 || parts[0] == "" {
		return Version{}, fmt.Errorf("malformed version %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("malformed version %q", s)
	}
	v := Version{Major: major}
	if len(parts) > 1 {
		minor, err := strconv.Atoi(parts[1])
		if err != nil {
			return Version{}, fmt.Errorf("malformed version %q", s)
		}
		v.Minor = minor
	}
	return v, nil
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsZero reports whether v carries no version information.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Capabilities describes what the cache product behind a driver can do.
// Translators consult it instead of talking to the product directly.
type Capabilities struct {
	// Product is the display name used in diagnostics, e.g. "GemFire".
	Product string
	// Version is the product version the driver was built against.
	Version Version
	// MinPersistentVersion is the oldest version able to host persistent
	// client regions. Zero falls back to the schema minimum.
	MinPersistentVersion Version
}

// PersistentMinimum returns the effective persistence version gate.
func (c Capabilities) PersistentMinimum() Version {
	if c.MinPersistentVersion.IsZero() {
		return Version{Major: n.MinPersistentMajor, Minor: n.MinPersistentMinor}
	}
	return c.MinPersistentVersion
}

// SupportsPersistentRegions reports whether persistent client regions can
// be declared against this product.
func (c Capabilities) SupportsPersistentRegions() bool {
	return c.Version.AtLeast(c.PersistentMinimum())
}
