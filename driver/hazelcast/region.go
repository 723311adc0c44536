package hazelcast

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-logr/logr"
	hz "github.com/hazelcast/hazelcast-go-client"
	"github.com/hazelcast/hazelcast-go-client/predicate"
	hztypes "github.com/hazelcast/hazelcast-go-client/types"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
)

// keyAttribute is the query attribute Hazelcast predicates use to match
// entry keys.
const keyAttribute = "__key"

// mapRegion is a client region backed by one distributed map.
type mapRegion struct {
	name string
	m    *hz.Map
	log  logr.Logger

	mu            sync.Mutex
	subscriptions []hztypes.UUID
}

var _ client.Region = &mapRegion{}

func newMapRegion(name string, m *hz.Map, log logr.Logger) *mapRegion {
	return &mapRegion{name: name, m: m, log: log}
}

func (r *mapRegion) Name() string { return r.name }

// AttachListener subscribes listener to the full entry stream of the
// backing map.
func (r *mapRegion) AttachListener(ctx context.Context, listener client.CacheListener) error {
	config := hz.MapEntryListenerConfig{IncludeValue: true}
	config.NotifyEntryAdded(true)
	config.NotifyEntryUpdated(true)
	config.NotifyEntryRemoved(true)
	config.NotifyEntryEvicted(true)

	subscription, err := r.m.AddEntryListener(ctx, config, func(event *hz.EntryNotified) {
		listener.OnEntryEvent(r.toEntryEvent(event))
	})
	if err != nil {
		return err
	}
	r.remember(subscription)
	return nil
}

func (r *mapRegion) toEntryEvent(event *hz.EntryNotified) client.EntryEvent {
	return client.EntryEvent{
		Region:   r.name,
		Op:       entryOp(event.EventType),
		Key:      event.Key,
		Value:    event.Value,
		OldValue: event.OldValue,
	}
}

func entryOp(t hz.EntryEventType) client.EntryOp {
	switch t {
	case hz.EntryAdded:
		return client.EntryAdded
	case hz.EntryUpdated:
		return client.EntryUpdated
	case hz.EntryRemoved:
		return client.EntryRemoved
	default:
		// Eviction and expiry both mean the entry left without a remove.
		return client.EntryEvicted
	}
}

// RegisterInterest keeps a standing subscription for the interest and
// fetches the snapshot its result policy asks for. The cluster streams
// matching entry events to this client for as long as the subscription
// lives; delivery to the application goes through attached listeners.
func (r *mapRegion) RegisterInterest(ctx context.Context, def v1.InterestDefinition, key interface{}) error {
	config := hz.MapEntryListenerConfig{IncludeValue: true}
	config.NotifyEntryAdded(true)
	config.NotifyEntryUpdated(true)
	config.NotifyEntryRemoved(true)
	config.NotifyEntryEvicted(true)

	switch def.Kind {
	case v1.InterestKey:
		config.Key = key
	case v1.InterestRegex:
		pattern := def.Key.Literal
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidInterestPattern, pattern, err)
		}
		config.Predicate = predicate.Regex(keyAttribute, pattern)
	default:
		return fmt.Errorf("unknown interest kind %q", def.Kind)
	}
	if def.Durable {
		// Listeners re-register on reconnect, which is as durable as this
		// product gets from the client side.
		r.log.V(1).Info("durable interest rides on the reconnect strategy", "region", r.name)
	}

	subscription, err := r.m.AddEntryListener(ctx, config, func(*hz.EntryNotified) {})
	if err != nil {
		return err
	}
	r.remember(subscription)
	return r.fetchSnapshot(ctx, def, key)
}

func (r *mapRegion) fetchSnapshot(ctx context.Context, def v1.InterestDefinition, key interface{}) error {
	switch def.ResultPolicy.OrDefault() {
	case v1.ResultPolicyNone:
		return nil
	case v1.ResultPolicyKeys:
		return r.fetchKeys(ctx, def, key)
	default:
		return r.fetchEntries(ctx, def, key)
	}
}

func (r *mapRegion) fetchKeys(ctx context.Context, def v1.InterestDefinition, key interface{}) error {
	if def.Kind == v1.InterestKey {
		_, err := r.m.ContainsKey(ctx, key)
		return err
	}
	keys, err := r.m.GetKeySetWithPredicate(ctx, predicate.Regex(keyAttribute, def.Key.Literal))
	if err != nil {
		return err
	}
	r.log.V(1).Info("interest snapshot", "region", r.name, "keys", len(keys))
	return nil
}

func (r *mapRegion) fetchEntries(ctx context.Context, def v1.InterestDefinition, key interface{}) error {
	if def.Kind == v1.InterestKey {
		_, err := r.m.Get(ctx, key)
		return err
	}
	entries, err := r.m.GetEntrySetWithPredicate(ctx, predicate.Regex(keyAttribute, def.Key.Literal))
	if err != nil {
		return err
	}
	r.log.V(1).Info("interest snapshot", "region", r.name, "entries", len(entries))
	return nil
}

// Close drops the region's subscriptions. The backing map stays on the
// cluster.
func (r *mapRegion) Close(ctx context.Context) error {
	r.mu.Lock()
	subscriptions := r.subscriptions
	r.subscriptions = nil
	r.mu.Unlock()

	var firstErr error
	for _, id := range subscriptions {
		if err := r.m.RemoveEntryListener(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *mapRegion) remember(id hztypes.UUID) {
	r.mu.Lock()
	r.subscriptions = append(r.subscriptions, id)
	r.mu.Unlock()
}
