package hazelcast

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	hz "github.com/hazelcast/hazelcast-go-client"
	"github.com/hazelcast/hazelcast-go-client/cluster"

	"github.com/gemgrid/gridconfig/client"
)

// Connection tracks the cluster side of one cache. It satisfies the
// generic cluster connection SPI and additionally exposes the member view
// for tooling.
type Connection struct {
	client *hz.Client
	log    logr.Logger

	mu       sync.Mutex
	released bool
}

var _ client.ClusterConnection = &Connection{}

func newConnection(hzClient *hz.Client, log logr.Logger) *Connection {
	return &Connection{client: hzClient, log: log}
}

// Connected reports whether at least one cluster member is reachable.
func (c *Connection) Connected() bool {
	if !c.client.Running() {
		return false
	}
	ci := hz.NewClientInternal(c.client)
	for _, member := range ci.OrderedMembers() {
		if ci.ConnectedToMember(member.UUID) {
			return true
		}
	}
	return false
}

// AllMembersAccessible reports whether every known member answers.
func (c *Connection) AllMembersAccessible() bool {
	if !c.client.Running() {
		return false
	}
	ci := hz.NewClientInternal(c.client)
	for _, member := range ci.OrderedMembers() {
		if !ci.ConnectedToMember(member.UUID) {
			return false
		}
	}
	return true
}

// MemberData is one cluster member as seen by this client.
type MemberData struct {
	Address    string
	UUID       string
	Version    string
	LiteMember bool
}

func newMemberData(m cluster.MemberInfo) MemberData {
	return MemberData{
		Address:    m.Address.String(),
		UUID:       m.UUID.String(),
		Version:    fmt.Sprintf("%d.%d.%d", m.Version.Major, m.Version.Minor, m.Version.Patch),
		LiteMember: m.LiteMember,
	}
}

func (m MemberData) String() string {
	return fmt.Sprintf("%s:%s", m.Address, m.UUID)
}

// Members returns the member list in cluster order.
func (c *Connection) Members() []MemberData {
	if !c.client.Running() {
		return nil
	}
	ci := hz.NewClientInternal(c.client)
	ordered := ci.OrderedMembers()
	members := make([]MemberData, 0, len(ordered))
	for _, m := range ordered {
		members = append(members, newMemberData(m))
	}
	return members
}

// ReleaseResources marks per-connection resources as surrendered. The Go
// client frees its sockets on shutdown, there is nothing to free earlier.
func (c *Connection) ReleaseResources() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	c.log.V(1).Info("released connection resources")
}

// Disconnect shuts the underlying client down. Safe to call when already
// stopped.
func (c *Connection) Disconnect(ctx context.Context) error {
	if !c.client.Running() {
		return nil
	}
	return c.client.Shutdown(ctx)
}
