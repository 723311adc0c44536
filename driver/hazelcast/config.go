package hazelcast

import (
	"time"

	"github.com/google/uuid"
	hz "github.com/hazelcast/hazelcast-go-client"
	"github.com/hazelcast/hazelcast-go-client/cluster"
	"github.com/hazelcast/hazelcast-go-client/logger"
	hztypes "github.com/hazelcast/hazelcast-go-client/types"

	"github.com/gemgrid/gridconfig/client"
	n "github.com/gemgrid/gridconfig/internal/naming"
	"github.com/gemgrid/gridconfig/internal/util"
)

// BuildConfig maps the generic cache properties onto the Hazelcast client
// configuration. Properties the product has no client side equivalent for
// are left to the cluster.
func BuildConfig(props client.Properties) hz.Config {
	config := hz.Config{
		ClientName: clientName(props),
		Logger: logger.Config{
			Level: logger.OffLevel,
		},
		Cluster: cluster.Config{
			ConnectionStrategy: cluster.ConnectionStrategyConfig{
				Timeout:       connectTimeout(props),
				ReconnectMode: cluster.ReconnectModeOn,
				Retry: cluster.ConnectionRetryConfig{
					InitialBackoff: hztypes.Duration(200 * time.Millisecond),
					MaxBackoff:     hztypes.Duration(1 * time.Second),
					Jitter:         0.25,
				},
			},
		},
	}
	cc := &config.Cluster
	cc.Name = props.GetOr(n.PropertyClusterName, n.DefaultClusterName)
	cc.Unisocket = util.ParseBool(props.GetOr(n.PropertyUnisocket, ""))
	if addrs := memberAddresses(props); len(addrs) > 0 {
		cc.Network.SetAddresses(addrs...)
	}
	return config
}

func memberAddresses(props client.Properties) []string {
	raw := util.SplitAndTrim(props.GetOr(n.PropertyLocators, ""))
	addrs := make([]string, 0, len(raw))
	for _, a := range raw {
		addrs = append(addrs, util.EnsurePort(a, n.DefaultGridPort))
	}
	return addrs
}

func connectTimeout(props client.Properties) hztypes.Duration {
	ms := util.ParseIntOr(props.GetOr(n.PropertyConnectTimeout, ""), n.DefaultConnectTimeoutMs)
	return hztypes.Duration(time.Duration(ms) * time.Millisecond)
}

// clientName picks the name the client announces to the cluster: the
// durable id when one is declared, otherwise the cache name, otherwise a
// generated one so management tooling can still tell clients apart.
func clientName(props client.Properties) string {
	if id := props.GetOr(n.PropertyDurableClientID, ""); util.HasText(id) {
		return id
	}
	if name := props.GetOr(n.PropertyName, ""); util.HasText(name) {
		return name
	}
	return "grid-client-" + uuid.New().String()
}
