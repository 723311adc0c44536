package xmlconfig

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	v1 "github.com/gemgrid/gridconfig/api/v1"
)

func fail(t *testing.T) func(message string, callerSkip ...int) {
	return func(message string, callerSkip ...int) {
		t.Errorf(message)
	}
}

func testLogger() logr.Logger {
	return zapr.NewLogger(zap.NewNop())
}

func capableCaps() v1.Capabilities {
	return v1.Capabilities{Product: "GemFire", Version: v1.Version{Major: 6, Minor: 6}}
}

func incapableCaps() v1.Capabilities {
	return v1.Capabilities{Product: "GemFire", Version: v1.Version{Major: 6, Minor: 0}}
}

func mustElement(t *testing.T, doc string) *Element {
	t.Helper()
	el, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return el
}

func parseRegion(t *testing.T, doc string, caps v1.Capabilities) (*v1.RegionDefinition, *ParserContext) {
	t.Helper()
	pc := NewParserContext(caps, testLogger())
	return ParseClientRegion(mustElement(t, doc), pc), pc
}
