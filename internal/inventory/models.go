package inventory

import "github.com/hashicorp/hcl/v2"

// Document is the YAML/JSON shape of an inventory file. Machines is a pointer
// so an absent key can be told apart from an empty list.
type Document struct {
	Machines *[]Machine `yaml:"machines"`
}

// Machine is a single inventory entry. Only machine_name is read; any other
// keys of the entry are ignored.
type Machine struct {
	MachineName *string `yaml:"machine_name"`
}

// HCLMachine represents a machine block in an HCL inventory.
type HCLMachine struct {
	MachineName string   `hcl:"machine_name"`
	Remain      hcl.Body `hcl:",remain"`
}

// HCLFile represents the top-level structure containing machine blocks.
type HCLFile struct {
	Machines []*HCLMachine `hcl:"machine,block"`
	Remain   hcl.Body      `hcl:",remain"`
}
