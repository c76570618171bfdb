package models

// InstanceRecord holds the discovered network interfaces of a single instance.
// It is also the element type of the output document.
type InstanceRecord struct {
	Name       string            `json:"name"`
	Interfaces []InterfaceRecord `json:"networkInterfaces"`
}

// InterfaceRecord describes one non-loopback network device of an instance.
type InterfaceRecord struct {
	Name        string `json:"name"`
	IPv4Address string `json:"ip_addr"`
	MACAddress  string `json:"mac_addr"`
}

// InstanceLocation holds the EC2 attributes needed to reach an instance found by name.
type InstanceLocation struct {
	Name       string `json:"name"`
	InstanceID string `json:"instance_id,omitempty"`
	PrivateIP  string `json:"private_ip,omitempty"`
	PublicIP   string `json:"public_ip,omitempty"`
	PublicDNS  string `json:"public_dns,omitempty"`
	State      string `json:"state,omitempty"`
}

// InterfaceChange represents a difference found for a specific interface
// between the previous output document and the current run.
type InterfaceChange struct {
	Interface string `json:"interface"`
	Attribute string `json:"attribute"`
	Previous  string `json:"previous"`
	Current   string `json:"current"`
}
