package driftcheck

import "netinventory/internal/models"

// Attribute names reported in models.InterfaceChange
const (
	AttributeInterface = "interface"
	AttributeIPv4      = "ip_addr"
	AttributeMAC       = "mac_addr"
)

// ChangeResult holds the differences between the previous and the current
// record of one instance.
type ChangeResult struct {
	Instance   string
	IsNew      bool // no previous record existed
	HasChanges bool
	Changes    []models.InterfaceChange
}

// IndexByName maps instance names to records. The first record wins when a
// name repeats.
func IndexByName(records []models.InstanceRecord) map[string]*models.InstanceRecord {
	index := make(map[string]*models.InstanceRecord, len(records))
	for i := range records {
		if _, ok := index[records[i].Name]; !ok {
			index[records[i].Name] = &records[i]
		}
	}
	return index
}
