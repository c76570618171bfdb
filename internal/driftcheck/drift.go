package driftcheck

import (
	"sort"
	"strings"

	"netinventory/internal/models"
)

// AttributeComparator compares one attribute of an interface seen in both
// runs and returns whether it changed, along with both values.
type AttributeComparator func(previous, current models.InterfaceRecord) (changed bool, previousValue, currentValue string)

// DetectChanges compares every attribute of the interfaces of one instance
// between the previous output document and the current run.
func DetectChanges(previous, current *models.InstanceRecord) (*ChangeResult, error) {
	return DetectChangesFor(previous, current, nil)
}

// DetectChangesFor is DetectChanges restricted to attributesToCheck. An empty
// list checks all attributes. Interfaces are matched by name; added and
// removed interfaces are always reported.
func DetectChangesFor(previous, current *models.InstanceRecord, attributesToCheck []string) (*ChangeResult, error) {
	if current == nil {
		return nil, NewCompareError(ErrInvalidInput, "current instance record is nil", "")
	}

	comparators, err := selectComparators(attributesToCheck)
	if err != nil {
		return nil, err
	}

	result := &ChangeResult{
		Instance: current.Name,
		Changes:  []models.InterfaceChange{},
	}
	if previous == nil {
		result.IsNew = true
		return result, nil
	}

	before := make(map[string]models.InterfaceRecord, len(previous.Interfaces))
	for _, iface := range previous.Interfaces {
		before[iface.Name] = iface
	}

	seen := make(map[string]bool, len(current.Interfaces))
	for _, cur := range current.Interfaces {
		seen[cur.Name] = true
		prev, ok := before[cur.Name]
		if !ok {
			result.Changes = append(result.Changes, models.InterfaceChange{
				Interface: cur.Name,
				Attribute: AttributeInterface,
				Current:   cur.Name,
			})
			continue
		}
		for attr, compare := range comparators {
			if changed, p, c := compare(prev, cur); changed {
				result.Changes = append(result.Changes, models.InterfaceChange{
					Interface: cur.Name,
					Attribute: attr,
					Previous:  p,
					Current:   c,
				})
			}
		}
	}

	for _, prev := range previous.Interfaces {
		if !seen[prev.Name] {
			result.Changes = append(result.Changes, models.InterfaceChange{
				Interface: prev.Name,
				Attribute: AttributeInterface,
				Previous:  prev.Name,
			})
		}
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		a, b := result.Changes[i], result.Changes[j]
		if a.Interface != b.Interface {
			return a.Interface < b.Interface
		}
		return a.Attribute < b.Attribute
	})
	result.HasChanges = len(result.Changes) > 0

	return result, nil
}

// getAttributeComparators returns a map of attribute names to comparison functions.
func getAttributeComparators() map[string]AttributeComparator {
	return map[string]AttributeComparator{
		AttributeIPv4: func(prev, cur models.InterfaceRecord) (bool, string, string) {
			return prev.IPv4Address != cur.IPv4Address, prev.IPv4Address, cur.IPv4Address
		},
		AttributeMAC: func(prev, cur models.InterfaceRecord) (bool, string, string) {
			return !strings.EqualFold(prev.MACAddress, cur.MACAddress), prev.MACAddress, cur.MACAddress
		},
	}
}

// ValidateAttributes reports the first attribute name no comparator exists for
func ValidateAttributes(attributes []string) error {
	_, err := selectComparators(attributes)
	return err
}

func selectComparators(attributesToCheck []string) (map[string]AttributeComparator, error) {
	all := getAttributeComparators()
	if len(attributesToCheck) == 0 {
		return all, nil
	}

	selected := make(map[string]AttributeComparator, len(attributesToCheck))
	for _, attr := range attributesToCheck {
		normalized := normalizeAttributeName(attr)
		if normalized == AttributeInterface {
			// added and removed interfaces are reported regardless
			continue
		}
		compare, ok := all[normalized]
		if !ok {
			return nil, NewCompareError(ErrUnknownAttribute, "unsupported attribute, want interface, ip_addr or mac_addr", attr)
		}
		selected[normalized] = compare
	}
	return selected, nil
}

// normalizeAttributeName standardizes attribute names so "IP", "ip-address"
// or "mac" select the right comparator.
func normalizeAttributeName(attr string) string {
	normalized := strings.ToLower(strings.TrimSpace(attr))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	specialCases := map[string]string{
		"ip":          AttributeIPv4,
		"ipv4":        AttributeIPv4,
		"ip_address":  AttributeIPv4,
		"ipaddr":      AttributeIPv4,
		"mac":         AttributeMAC,
		"mac_address": AttributeMAC,
		"macaddr":     AttributeMAC,
		"hwaddr":      AttributeMAC,
		"iface":       AttributeInterface,
		"device":      AttributeInterface,
	}

	if replacement, exists := specialCases[normalized]; exists {
		return replacement
	}

	return normalized
}
