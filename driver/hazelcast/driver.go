package hazelcast

import (
	"context"

	"github.com/go-logr/logr"
	hz "github.com/hazelcast/hazelcast-go-client"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
)

const productName = "Hazelcast"

// The client library speaks the 5.x server line; persistence arrived with
// 5.0, so every reachable cluster supports persistent regions.
var (
	productVersion       = v1.Version{Major: 5, Minor: 1}
	minPersistentVersion = v1.Version{Major: 5, Minor: 0}
)

// Driver connects the generic cache SPI to a Hazelcast cluster.
type Driver struct {
	log logr.Logger
}

var (
	_ client.Driver          = &Driver{}
	_ client.ErrorTranslator = &Driver{}
)

func New(log logr.Logger) *Driver {
	return &Driver{log: log}
}

func (d *Driver) Capabilities() v1.Capabilities {
	return v1.Capabilities{
		Product:              productName,
		Version:              productVersion,
		MinPersistentVersion: minPersistentVersion,
	}
}

// CreateCache connects to the cluster described by props. Native
// connection errors are returned untouched; TranslateIfPossible can
// classify them afterwards.
func (d *Driver) CreateCache(ctx context.Context, props client.Properties) (client.ClientCache, client.ClusterConnection, error) {
	config := BuildConfig(props)
	hzClient, err := hz.StartNewClientWithConfig(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	d.log.V(1).Info("connected to cluster",
		"cluster", config.Cluster.Name, "client", hzClient.Name())
	cache := newGridCache(hzClient, d.Capabilities(), d.log)
	conn := newConnection(hzClient, d.log)
	return cache, conn, nil
}
