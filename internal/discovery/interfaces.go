package discovery

import (
	"context"

	"netinventory/internal/models"
)

// IDiscoverer builds the interface record of a single instance
//
//go:generate mockery --name=IDiscoverer --output=./mocks
type IDiscoverer interface {
	Discover(ctx context.Context, name string) (*models.InstanceRecord, error)
}
