package integration

import (
	"fmt"
	"sync"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
)

// auditListenerType is the registered name declarative documents use to
// attach the suite's recording listener by type.
const auditListenerType = "integration.AuditListener"

// auditListener records every entry event it sees so suites can assert on
// delivery without a cluster.
type auditListener struct {
	mu     sync.Mutex
	events []client.EntryEvent
}

func (l *auditListener) OnEntryEvent(event client.EntryEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *auditListener) Events() []client.EntryEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]client.EntryEvent, len(l.events))
	copy(out, l.events)
	return out
}

// beanMap stands in for the hosting container: a fixed set of named beans
// the cache factory resolves references against.
type beanMap map[string]interface{}

func (m beanMap) LookupBean(name string) (interface{}, error) {
	if obj, ok := m[name]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("bean %q not found", name)
}

func capableGrid() v1.Capabilities {
	return v1.Capabilities{Product: "GemFire", Version: v1.Version{Major: 6, Minor: 6}}
}

func legacyGrid() v1.Capabilities {
	return v1.Capabilities{Product: "GemFire", Version: v1.Version{Major: 6, Minor: 0}}
}
