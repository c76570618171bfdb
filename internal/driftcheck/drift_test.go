package driftcheck

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netinventory/internal/models"
)

func record(name string, ifaces ...models.InterfaceRecord) *models.InstanceRecord {
	return &models.InstanceRecord{Name: name, Interfaces: ifaces}
}

func iface(name, ip, mac string) models.InterfaceRecord {
	return models.InterfaceRecord{Name: name, IPv4Address: ip, MACAddress: mac}
}

func TestDetectChanges_NoChanges(t *testing.T) {
	prev := record("vm-a", iface("eth0", "10.0.0.5", "aa:bb:cc:dd:ee:ff"))
	cur := record("vm-a", iface("eth0", "10.0.0.5", "AA:BB:CC:DD:EE:FF"))

	result, err := DetectChanges(prev, cur)
	require.NoError(t, err)

	assert.False(t, result.HasChanges, "MAC case differences are not changes")
	assert.False(t, result.IsNew)
	assert.Empty(t, result.Changes)
}

func TestDetectChanges_WithChanges(t *testing.T) {
	prev := record("vm-a",
		iface("ens4", "10.0.1.2", "42:01:0a:00:01:02"),
		iface("ens5", "10.0.2.2", "42:01:0a:00:02:02"),
		iface("ens6", "", "42:01:0a:00:03:02"),
	)
	cur := record("vm-a",
		iface("ens5", "10.0.2.9", "42:01:0a:00:02:99"),
		iface("ens4", "10.0.1.2", "42:01:0a:00:01:02"),
		iface("ens7", "10.0.3.2", "42:01:0a:00:04:02"),
	)

	result, err := DetectChanges(prev, cur)
	require.NoError(t, err)

	assert.True(t, result.HasChanges)
	assert.Equal(t, "vm-a", result.Instance)
	assert.Equal(t, []models.InterfaceChange{
		{Interface: "ens5", Attribute: "ip_addr", Previous: "10.0.2.2", Current: "10.0.2.9"},
		{Interface: "ens5", Attribute: "mac_addr", Previous: "42:01:0a:00:02:02", Current: "42:01:0a:00:02:99"},
		{Interface: "ens6", Attribute: "interface", Previous: "ens6", Current: ""},
		{Interface: "ens7", Attribute: "interface", Previous: "", Current: "ens7"},
	}, result.Changes)
}

func TestDetectChanges_NewInstance(t *testing.T) {
	result, err := DetectChanges(nil, record("vm-a", iface("eth0", "10.0.0.5", "aa:bb:cc:dd:ee:ff")))
	require.NoError(t, err)

	assert.True(t, result.IsNew)
	assert.False(t, result.HasChanges)
}

func TestDetectChanges_NilCurrent(t *testing.T) {
	_, err := DetectChanges(record("vm-a"), nil)
	assert.Error(t, err)
	assert.True(t, IsErrorCategory(err, ErrInvalidInput), "Expected ErrInvalidInput error category")
}

func TestDetectChangesFor_SpecificAttributes(t *testing.T) {
	prev := record("vm-a", iface("eth0", "10.0.0.5", "aa:bb:cc:dd:ee:ff"))
	cur := record("vm-a", iface("eth0", "10.0.0.6", "aa:bb:cc:dd:ee:00"))

	result, err := DetectChangesFor(prev, cur, []string{"IP"})
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, "ip_addr", result.Changes[0].Attribute)
}

func TestDetectChangesFor_UnsupportedAttribute(t *testing.T) {
	_, err := DetectChangesFor(record("vm-a"), record("vm-a"), []string{"mtu"})

	assert.Error(t, err, "Expected error for unsupported attribute")
	assert.True(t, IsErrorCategory(err, ErrUnknownAttribute), "Expected ErrUnknownAttribute error category")
}

func TestValidateAttributes(t *testing.T) {
	assert.NoError(t, ValidateAttributes(nil))
	assert.NoError(t, ValidateAttributes([]string{"ip", "MAC"}))
	assert.NoError(t, ValidateAttributes([]string{"interface"}))
	assert.NoError(t, ValidateAttributes([]string{"Device", "mac"}))
	assert.True(t, IsErrorCategory(ValidateAttributes([]string{"ip", "speed"}), ErrUnknownAttribute))
}

func TestDetectChangesFor_InterfaceOnly(t *testing.T) {
	prev := record("vm-a",
		iface("eth0", "10.0.0.5", "aa:bb:cc:dd:ee:ff"),
		iface("eth1", "10.0.1.5", "aa:bb:cc:dd:ee:01"))
	cur := record("vm-a",
		iface("eth0", "10.0.0.6", "aa:bb:cc:dd:ee:00"),
		iface("eth2", "10.0.2.5", "aa:bb:cc:dd:ee:02"))

	result, err := DetectChangesFor(prev, cur, []string{"interface"})
	require.NoError(t, err)

	assert.Equal(t, []models.InterfaceChange{
		{Interface: "eth1", Attribute: AttributeInterface, Previous: "eth1"},
		{Interface: "eth2", Attribute: AttributeInterface, Current: "eth2"},
	}, result.Changes)
}

func TestNormalizeAttributeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ip_addr", "ip_addr"},
		{"IP", "ip_addr"},
		{"ip-address", "ip_addr"},
		{"ipv4", "ip_addr"},
		{"mac", "mac_addr"},
		{"MAC Address", "mac_addr"},
		{"hwaddr", "mac_addr"},
		{"custom_attribute", "custom_attribute"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, normalizeAttributeName(test.input), "Incorrect normalization result")
		})
	}
}

func TestIndexByName(t *testing.T) {
	records := []models.InstanceRecord{
		{Name: "server1", Interfaces: []models.InterfaceRecord{iface("ens4", "10.0.1.2", "m1")}},
		{Name: "client1"},
		{Name: "server1", Interfaces: []models.InterfaceRecord{iface("ens4", "10.0.1.9", "m9")}},
	}

	index := IndexByName(records)

	assert.Len(t, index, 2)
	assert.Equal(t, "10.0.1.2", index["server1"].Interfaces[0].IPv4Address)
}

func TestCompareError(t *testing.T) {
	tests := []struct {
		name string
		err  *CompareError
		want string
	}{
		{
			name: "With attribute",
			err:  NewCompareError(ErrUnknownAttribute, "unsupported attribute", "mtu"),
			want: `compare unknown_attribute: unsupported attribute [attribute: "mtu"]`,
		},
		{
			name: "Without attribute",
			err:  NewCompareError(ErrInvalidInput, "current instance record is nil", ""),
			want: "compare invalid_input: current instance record is nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsErrorCategory(t *testing.T) {
	cause := errors.New("root cause")
	inner := &CompareError{Category: ErrUnknownAttribute, Message: "inner", Attribute: "attr", Underlying: cause}
	outer := fmt.Errorf("comparing vm-a: %w", inner)

	assert.True(t, IsErrorCategory(outer, ErrUnknownAttribute))
	assert.False(t, IsErrorCategory(outer, ErrInvalidInput))
	assert.ErrorIs(t, outer, cause)
	assert.False(t, IsErrorCategory(nil, ErrInvalidInput))
	assert.False(t, IsErrorCategory(errors.New("regular error"), ErrInvalidInput))
}
