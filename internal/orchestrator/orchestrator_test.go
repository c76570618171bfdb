package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"netinventory/internal/discovery"
	discoveryMocks "netinventory/internal/discovery/mocks"
	"netinventory/internal/inventory"
	inventoryMocks "netinventory/internal/inventory/mocks"
	"netinventory/internal/models"
	"netinventory/internal/remote"
	remoteMocks "netinventory/internal/remote/mocks"
	"netinventory/internal/report"
	reportMocks "netinventory/internal/report/mocks"
	"netinventory/pkg/logging"
)

type serviceMocks struct {
	loader     *inventoryMocks.IProvider
	discoverer *discoveryMocks.IDiscoverer
	writer     *reportMocks.IWriter
	reader     *reportMocks.IReader
	printer    *reportMocks.IPrinter
}

// setupServiceWithMocks creates a new Service instance with the provided configuration and mocks
func setupServiceWithMocks(t *testing.T, config Config) (*Service, serviceMocks) {
	m := serviceMocks{
		loader:     inventoryMocks.NewIProvider(t),
		discoverer: discoveryMocks.NewIDiscoverer(t),
		writer:     reportMocks.NewIWriter(t),
		reader:     reportMocks.NewIReader(t),
		printer:    reportMocks.NewIPrinter(t),
	}
	service := NewService(config, m.loader, m.discoverer, m.writer, m.reader, m.printer, logging.NewMockLogger())
	return service, m
}

func validConfig() Config {
	return Config{
		InventoryPath: "run/config/vars/0101_bootstrap.yml",
		OutputPath:    "run/config/vars/mac_addrs.json",
		Quiet:         true,
	}
}

func rec(name string, ifaces ...models.InterfaceRecord) *models.InstanceRecord {
	if ifaces == nil {
		ifaces = []models.InterfaceRecord{}
	}
	return &models.InstanceRecord{Name: name, Interfaces: ifaces}
}

// TestValidateConfig tests the configuration validation logic
func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "Valid config",
			config: validConfig(),
		},
		{
			name:    "Missing inventory path",
			config:  Config{OutputPath: "out.json"},
			wantErr: inventory.ErrMissingField,
		},
		{
			name:    "Missing output path",
			config:  Config{InventoryPath: "in.yml"},
			wantErr: inventory.ErrMissingField,
		},
		{
			name:    "Unsupported output format",
			config:  Config{InventoryPath: "in.yml", OutputPath: "out.json", OutputFormat: "xml"},
			wantErr: inventory.ErrMalformed,
		},
		{
			name:    "Unknown comparison attribute",
			config:  Config{InventoryPath: "in.yml", OutputPath: "out.json", AttributesToCheck: []string{"mtu"}},
			wantErr: inventory.ErrMalformed,
		},
		{
			name:    "Empty config",
			config:  Config{},
			wantErr: inventory.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupServiceWithMocks(t, tt.config)

			err := service.validateConfig()

			if tt.wantErr != "" {
				assert.True(t, inventory.IsErrorCategory(err, tt.wantErr), "Expected %s error, got %v", tt.wantErr, err)
			} else {
				assert.NoError(t, err, "Expected no error for valid config")
			}
		})
	}
}

func TestRun_InvalidConfigTouchesNothing(t *testing.T) {
	service, m := setupServiceWithMocks(t, Config{})

	records, err := service.Run(context.Background())

	assert.Nil(t, records)
	assert.Error(t, err)
	m.loader.AssertNotCalled(t, "LoadMachineNames", mock.Anything)
}

func TestRun_WritesAfterEveryInstance(t *testing.T) {
	cfg := validConfig()
	service, m := setupServiceWithMocks(t, cfg)

	a := rec("server1", models.InterfaceRecord{Name: "ens4", IPv4Address: "10.0.1.2", MACAddress: "42:01:0a:00:01:02"})
	b := rec("client1", models.InterfaceRecord{Name: "ens4", IPv4Address: "10.0.1.3", MACAddress: "42:01:0a:00:01:03"})

	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"server1", "client1"}, nil)
	m.discoverer.On("Discover", mock.Anything, "server1").Return(a, nil).Once()
	m.discoverer.On("Discover", mock.Anything, "client1").Return(b, nil).Once()
	m.writer.On("WriteRecords", []models.InstanceRecord{*a}).Return(nil).Once()
	m.writer.On("WriteRecords", []models.InstanceRecord{*a, *b}).Return(nil).Once()

	records, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.InstanceRecord{*a, *b}, records)
	m.printer.AssertNotCalled(t, "PrintSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	cfg := validConfig()
	service, m := setupServiceWithMocks(t, cfg)

	a := rec("vm-a", models.InterfaceRecord{Name: "eth0", IPv4Address: "10.0.0.5", MACAddress: "aa:bb:cc:dd:ee:ff"})
	remoteErr := remote.NewRemoteExecError(remote.ErrExitStatus, "vm-b", discovery.ListDevicesCommand, 255, "Connection refused", nil)

	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"vm-a", "vm-b", "vm-c"}, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-a").Return(a, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-b").Return(nil, remoteErr)
	m.writer.On("WriteRecords", []models.InstanceRecord{*a}).Return(nil).Once()

	records, err := service.Run(context.Background())

	assert.Equal(t, []models.InstanceRecord{*a}, records)
	var got *remote.RemoteExecError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "vm-b", got.Instance)
	assert.Contains(t, err.Error(), "instance vm-b")
	m.discoverer.AssertNotCalled(t, "Discover", mock.Anything, "vm-c")
}

func TestRun_LoaderError(t *testing.T) {
	cfg := validConfig()
	service, m := setupServiceWithMocks(t, cfg)

	loadErr := inventory.NewConfigError(inventory.ErrUnreadable, cfg.InventoryPath, "cannot read inventory file", os.ErrNotExist)
	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return(nil, loadErr)

	_, err := service.Run(context.Background())

	assert.True(t, inventory.IsErrorCategory(err, inventory.ErrUnreadable))
	m.discoverer.AssertNotCalled(t, "Discover", mock.Anything, mock.Anything)
}

func TestRun_NoMachines(t *testing.T) {
	cfg := validConfig()
	cfg.Quiet = false
	service, m := setupServiceWithMocks(t, cfg)

	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{}, nil)

	records, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
	m.writer.AssertNotCalled(t, "WriteRecords", mock.Anything)
	m.printer.AssertNotCalled(t, "PrintSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_WriteError(t *testing.T) {
	cfg := validConfig()
	service, m := setupServiceWithMocks(t, cfg)

	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"vm-a", "vm-b"}, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-a").Return(rec("vm-a"), nil)
	m.writer.On("WriteRecords", mock.Anything).Return(errors.New("disk full"))

	_, err := service.Run(context.Background())

	assert.ErrorContains(t, err, "disk full")
	m.discoverer.AssertNotCalled(t, "Discover", mock.Anything, "vm-b")
}

func TestRun_CanceledContext(t *testing.T) {
	cfg := validConfig()
	service, m := setupServiceWithMocks(t, cfg)

	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"vm-a"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records, err := service.Run(ctx)

	assert.Empty(t, records)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ReportsChangesAgainstPrevious(t *testing.T) {
	cfg := validConfig()
	cfg.Quiet = false
	cfg.CompareWithPrevious = true
	cfg.OutputFormat = "json"
	service, m := setupServiceWithMocks(t, cfg)

	before := rec("vm-a", models.InterfaceRecord{Name: "eth0", IPv4Address: "10.0.0.4", MACAddress: "aa:bb:cc:dd:ee:ff"})
	after := rec("vm-a", models.InterfaceRecord{Name: "eth0", IPv4Address: "10.0.0.5", MACAddress: "aa:bb:cc:dd:ee:ff"})
	fresh := rec("vm-new")

	m.reader.On("ReadRecords").Return([]models.InstanceRecord{*before}, nil)
	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"vm-a", "vm-new"}, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-a").Return(after, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-new").Return(fresh, nil)
	m.writer.On("WriteRecords", mock.Anything).Return(nil).Twice()

	wantChanges := map[string][]models.InterfaceChange{
		"vm-a": {{Interface: "eth0", Attribute: "ip_addr", Previous: "10.0.0.4", Current: "10.0.0.5"}},
	}
	m.printer.On("PrintSummary", []models.InstanceRecord{*after, *fresh}, wantChanges, report.OutputFormatTypeJSON).Return(nil).Once()

	_, err := service.Run(context.Background())

	require.NoError(t, err)
}

func TestRun_UnreadablePreviousOnlyWarns(t *testing.T) {
	cfg := validConfig()
	cfg.CompareWithPrevious = true
	service, m := setupServiceWithMocks(t, cfg)

	m.reader.On("ReadRecords").Return(nil, errors.New("decoding mac_addrs.json: unexpected end of JSON input"))
	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"vm-a"}, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-a").Return(rec("vm-a"), nil)
	m.writer.On("WriteRecords", mock.Anything).Return(nil)

	_, err := service.Run(context.Background())

	assert.NoError(t, err)
}

func TestRun_FirstRunHasNothingToCompare(t *testing.T) {
	cfg := validConfig()
	cfg.CompareWithPrevious = true
	m := serviceMocks{
		loader:     inventoryMocks.NewIProvider(t),
		discoverer: discoveryMocks.NewIDiscoverer(t),
		writer:     reportMocks.NewIWriter(t),
		reader:     reportMocks.NewIReader(t),
		printer:    reportMocks.NewIPrinter(t),
	}
	var logs bytes.Buffer
	service := NewService(cfg, m.loader, m.discoverer, m.writer, m.reader, m.printer, logging.NewLogger(&logs, logging.DEBUG, false))

	m.reader.On("ReadRecords").Return(nil, nil)
	m.loader.On("LoadMachineNames", cfg.InventoryPath).Return([]string{"vm-a", "vm-b"}, nil)
	m.discoverer.On("Discover", mock.Anything, "vm-a").Return(rec("vm-a"), nil)
	m.discoverer.On("Discover", mock.Anything, "vm-b").Return(rec("vm-b"), nil)
	m.writer.On("WriteRecords", mock.Anything).Return(nil)

	_, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "nothing to compare")
	assert.NotContains(t, logs.String(), "was not in the previous output")
}

// TestDefaultService_EndToEnd drives the real loader, discoverer and file
// writer against a scripted executor.
func TestDefaultService_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	inv := filepath.Join(dir, "0101_bootstrap.yml")
	out := filepath.Join(dir, "vars", "mac_addrs.json")
	require.NoError(t, os.WriteFile(inv, []byte("machines:\n  - machine_name: vm-a\n  - machine_name: vm-b\n"), 0o600))

	exec := remoteMocks.NewExecutor(t)
	exec.On("Run", mock.Anything, "vm-a", discovery.ListDevicesCommand).
		Return("eth0: aa:bb:cc:dd:ee:ff\nlo: 00:00:00:00:00:00\n", nil)
	exec.On("Run", mock.Anything, "vm-a", "ip -4 addr show eth0").
		Return("2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500\n    inet 10.0.0.5/24 brd 10.0.0.255 scope global eth0\n", nil)

	cfg := Config{InventoryPath: inv, OutputPath: out, Quiet: true}

	t.Run("Success", func(t *testing.T) {
		exec.On("Run", mock.Anything, "vm-b", discovery.ListDevicesCommand).
			Return("lo: 00:00:00:00:00:00\n", nil).Once()

		records, err := NewDefaultService(cfg, exec, logging.NewMockLogger()).Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 2)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t,
			`[{"name":"vm-a","networkInterfaces":[{"name":"eth0","ip_addr":"10.0.0.5","mac_addr":"aa:bb:cc:dd:ee:ff"}]},{"name":"vm-b","networkInterfaces":[]}]`,
			string(got))
	})

	t.Run("Second instance fails", func(t *testing.T) {
		exec.On("Run", mock.Anything, "vm-b", discovery.ListDevicesCommand).
			Return("", remote.NewRemoteExecError(remote.ErrExitStatus, "vm-b", discovery.ListDevicesCommand, 255, "Connection refused", nil)).Once()

		_, err := NewDefaultService(cfg, exec, logging.NewMockLogger()).Run(context.Background())
		require.Error(t, err)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t,
			`[{"name":"vm-a","networkInterfaces":[{"name":"eth0","ip_addr":"10.0.0.5","mac_addr":"aa:bb:cc:dd:ee:ff"}]}]`,
			string(got))
	})
}
