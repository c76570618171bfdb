package discovery

import (
	"context"
	"errors"
	"fmt"

	"netinventory/internal/models"
	"netinventory/internal/remote"
	"netinventory/pkg/logging"
)

// Discoverer queries an instance through a remote.Executor and assembles its
// interface record.
type Discoverer struct {
	executor remote.Executor
	logger   logging.Logger

	// RequireIPv4 turns a device without a parseable IPv4 address into a
	// ParseError instead of an empty ip_addr.
	RequireIPv4 bool
}

// NewDiscoverer creates a new Discoverer
func NewDiscoverer(executor remote.Executor, logger logging.Logger) *Discoverer {
	return &Discoverer{
		executor: executor,
		logger:   logger,
	}
}

// Discover lists the devices of the named instance and looks up the IPv4
// address of every non-loopback device. Any remote or parse failure aborts
// the instance.
func (d *Discoverer) Discover(ctx context.Context, name string) (*models.InstanceRecord, error) {
	out, err := d.executor.Run(ctx, name, ListDevicesCommand)
	if err != nil {
		return nil, err
	}

	entries, err := ParseDeviceList(out)
	if err != nil {
		return nil, annotate(err, name, ListDevicesCommand)
	}

	record := &models.InstanceRecord{
		Name:       name,
		Interfaces: []models.InterfaceRecord{},
	}
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		if entry.Name == LoopbackDevice {
			continue
		}
		if seen[entry.Name] {
			d.logger.Warn("Instance %s lists device %s more than once, keeping the first entry", name, entry.Name)
			continue
		}
		seen[entry.Name] = true

		cmd := ShowIPv4Command(entry.Name)
		ipOut, err := d.executor.Run(ctx, name, cmd)
		if err != nil {
			return nil, err
		}

		ip, ok := ExtractFirstIPv4(ipOut)
		if !ok {
			if d.RequireIPv4 {
				return nil, &ParseError{
					Instance: name,
					Command:  cmd,
					Message:  fmt.Sprintf("no IPv4 address found for device %s", entry.Name),
				}
			}
			d.logger.Warn("No IPv4 address found for %s on %s, recording an empty address", entry.Name, name)
		}

		record.Interfaces = append(record.Interfaces, models.InterfaceRecord{
			Name:        entry.Name,
			IPv4Address: ip,
			MACAddress:  entry.MAC,
		})
	}

	d.logger.Debug("Instance %s has %d interfaces", name, len(record.Interfaces))
	return record, nil
}

func annotate(err error, instance, command string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Instance = instance
		pe.Command = command
		return pe
	}
	return err
}
