package xmlconfig

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

// ConfigError is one problem found while translating a declaration.
// Translation continues after recording it so that a single pass can
// surface every mistake in the document.
type ConfigError struct {
	Element string
	Region  string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("element %s of region %q: %s", e.Element, e.Region, e.Reason)
	}
	return fmt.Sprintf("element %s: %s", e.Element, e.Reason)
}

type ConfigErrors []*ConfigError

func (es ConfigErrors) Error() string {
	switch len(es) {
	case 0:
		return ""
	case 1:
		return es[0].Error()
	default:
		return fmt.Sprintf("multiple (%d) configuration errors: %s", len(es), es[0].Error())
	}
}

// AsConfigErrors tries to transform err to ConfigErrors and return it with
// true. If it is not possible nil and false is returned.
func AsConfigErrors(err error) (ConfigErrors, bool) {
	t := new(ConfigErrors)
	if errors.As(err, t) {
		return *t, true
	}
	return nil, false
}

// ParserContext carries what a translation pass needs to know about its
// surroundings: the capabilities of the cache product the declarations
// will run against, a logger, and the error collector.
type ParserContext struct {
	Capabilities v1.Capabilities
	Log          logr.Logger

	errs ConfigErrors
}

func NewParserContext(caps v1.Capabilities, log logr.Logger) *ParserContext {
	return &ParserContext{Capabilities: caps, Log: log}
}

// Errorf records a problem against el and carries on.
func (c *ParserContext) Errorf(el *Element, region string, format string, args ...interface{}) {
	c.errs = append(c.errs, &ConfigError{
		Element: el.Name(),
		Region:  region,
		Reason:  fmt.Sprintf(format, args...),
	})
}

// Errors returns every problem recorded so far in the order found.
func (c *ParserContext) Errors() ConfigErrors {
	return c.errs
}

// Err returns nil when the pass was clean and the collected errors
// otherwise.
func (c *ParserContext) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
