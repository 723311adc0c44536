package xmlconfig

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Element is a schema-agnostic view of one XML element. Child elements are
// kept in document order, which the region parser depends on.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
	Text     string     `xml:",chardata"`
}

// Decode reads the root element of an XML document.
func Decode(r io.Reader) (*Element, error) {
	var el Element
	if err := xml.NewDecoder(r).Decode(&el); err != nil {
		return nil, fmt.Errorf("malformed configuration document: %w", err)
	}
	return &el, nil
}

// Name returns the element's local name without any namespace prefix.
func (e *Element) Name() string {
	return e.XMLName.Local
}

// Attr returns the value of the named attribute, matching on local name,
// or the empty string when it is absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present at all.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// Child returns the first child element with the given local name.
func (e *Element) Child(name string) *Element {
	for i := range e.Children {
		if e.Children[i].Name() == name {
			return &e.Children[i]
		}
	}
	return nil
}
