package netplan

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"netinventory/internal/models"
)

// Interface names the rendered configuration assigns to each network
const (
	ManagementDevice = "ens5"
	InternalDevice   = "ens6"
)

// Config is a netplan v2 document
type Config struct {
	Network Network `yaml:"network"`
}

// Network is the top-level netplan network section
type Network struct {
	Ethernets map[string]Ethernet `yaml:"ethernets"`
	Version   int                 `yaml:"version"`
}

// Ethernet is one physical device, matched by MAC address and renamed
type Ethernet struct {
	DHCP4   bool   `yaml:"dhcp4"`
	DHCP6   bool   `yaml:"dhcp6"`
	Match   Match  `yaml:"match"`
	SetName string `yaml:"set-name"`
}

// Match selects a device by hardware address
type Match struct {
	MACAddress string `yaml:"macaddress"`
}

// FindInstance returns the record named name, or nil
func FindInstance(records []models.InstanceRecord, name string) *models.InstanceRecord {
	for i := range records {
		if records[i].Name == name {
			return &records[i]
		}
	}
	return nil
}

// Build assembles the netplan configuration of record: the management NIC
// becomes ens5 and the internal NIC ens6, both on DHCP.
func Build(record *models.InstanceRecord, classifier *Classifier) (*Config, error) {
	if record == nil {
		return nil, fmt.Errorf("no instance record")
	}
	if classifier == nil {
		classifier = DefaultClassifier()
	}

	mgmt, ok := classifier.ManagementInterface(record)
	if !ok {
		return nil, fmt.Errorf("instance %s has no interface on the management network %s", record.Name, classifier.Management)
	}
	internal, ok := classifier.InternalInterface(record)
	if !ok {
		return nil, fmt.Errorf("instance %s has no interface on the internal network %s", record.Name, classifier.Internal)
	}

	return &Config{
		Network: Network{
			Ethernets: map[string]Ethernet{
				ManagementDevice: ethernet(ManagementDevice, mgmt.MACAddress),
				InternalDevice:   ethernet(InternalDevice, internal.MACAddress),
			},
			Version: 2,
		},
	}, nil
}

// Render returns the netplan YAML for record
func Render(record *models.InstanceRecord, classifier *Classifier) ([]byte, error) {
	cfg, err := Build(record, classifier)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding netplan for %s: %w", record.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding netplan for %s: %w", record.Name, err)
	}
	return buf.Bytes(), nil
}

func ethernet(name, mac string) Ethernet {
	return Ethernet{
		DHCP4:   true,
		DHCP6:   false,
		Match:   Match{MACAddress: mac},
		SetName: name,
	}
}
