package client

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Properties is the flat string configuration handed to a driver when the
// cache is created. Keys the driver does not know are ignored by it.
type Properties map[string]string

// Clone returns an independent copy. A nil receiver clones to an empty,
// usable map.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p with overrides applied on top. Neither input
// is modified.
func (p Properties) Merge(overrides Properties) Properties {
	out := p.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// GetOr returns the value for key or def when the key is absent.
func (p Properties) GetOr(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadProperties reads a flat YAML mapping of scalars from path. Nested
// mappings and sequences are rejected since drivers only understand
// string properties.
func LoadProperties(path string) (Properties, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseProperties(raw)
}

func parseProperties(raw []byte) (Properties, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed properties document: %w", err)
	}
	props := make(Properties, len(doc))
	for k, v := range doc {
		switch v := v.(type) {
		case nil:
			props[k] = ""
		case string:
			props[k] = v
		case bool, int, int64, uint64, float64:
			props[k] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("property %q is not a scalar", k)
		}
	}
	return props, nil
}
