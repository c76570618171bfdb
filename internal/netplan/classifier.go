package netplan

import (
	"fmt"
	"net"

	"netinventory/internal/models"
)

// Default subnets of the two networks every instance is attached to
const (
	DefaultInternalCIDR   = "10.0.2.0/24"
	DefaultManagementCIDR = "10.0.1.0/24"
)

// Classifier assigns interfaces to the internal or the management network
// by the subnet their IPv4 address falls into.
type Classifier struct {
	Internal   *net.IPNet
	Management *net.IPNet
}

// NewClassifier parses the two subnets. Empty strings select the defaults.
func NewClassifier(internalCIDR, managementCIDR string) (*Classifier, error) {
	if internalCIDR == "" {
		internalCIDR = DefaultInternalCIDR
	}
	if managementCIDR == "" {
		managementCIDR = DefaultManagementCIDR
	}

	_, internal, err := net.ParseCIDR(internalCIDR)
	if err != nil {
		return nil, fmt.Errorf("invalid internal network %q: %w", internalCIDR, err)
	}
	_, management, err := net.ParseCIDR(managementCIDR)
	if err != nil {
		return nil, fmt.Errorf("invalid management network %q: %w", managementCIDR, err)
	}
	return &Classifier{Internal: internal, Management: management}, nil
}

// DefaultClassifier returns a classifier for the default subnets
func DefaultClassifier() *Classifier {
	c, _ := NewClassifier("", "")
	return c
}

// InternalInterface returns the first interface on the internal network
func (c *Classifier) InternalInterface(record *models.InstanceRecord) (models.InterfaceRecord, bool) {
	return firstIn(record, c.Internal)
}

// ManagementInterface returns the first interface on the management network
func (c *Classifier) ManagementInterface(record *models.InstanceRecord) (models.InterfaceRecord, bool) {
	return firstIn(record, c.Management)
}

// InternalIP returns the address of the instance on the internal network
func (c *Classifier) InternalIP(record *models.InstanceRecord) (string, bool) {
	iface, ok := c.InternalInterface(record)
	return iface.IPv4Address, ok
}

// ManagementIP returns the address of the instance on the management network
func (c *Classifier) ManagementIP(record *models.InstanceRecord) (string, bool) {
	iface, ok := c.ManagementInterface(record)
	return iface.IPv4Address, ok
}

func firstIn(record *models.InstanceRecord, network *net.IPNet) (models.InterfaceRecord, bool) {
	if record == nil || network == nil {
		return models.InterfaceRecord{}, false
	}
	for _, iface := range record.Interfaces {
		ip := net.ParseIP(iface.IPv4Address)
		if ip != nil && network.Contains(ip) {
			return iface, true
		}
	}
	return models.InterfaceRecord{}, false
}
