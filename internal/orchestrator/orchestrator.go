package orchestrator

import (
	"context"
	"fmt"

	"netinventory/internal/discovery"
	"netinventory/internal/driftcheck"
	"netinventory/internal/inventory"
	"netinventory/internal/models"
	"netinventory/internal/remote"
	"netinventory/internal/report"
	"netinventory/pkg/logging"
)

// Service runs the discovery pipeline: inventory, per-instance discovery,
// and an output write after every instance.
type Service struct {
	config     Config
	loader     inventory.IProvider
	discoverer discovery.IDiscoverer
	writer     report.IWriter
	reader     report.IReader
	printer    report.IPrinter
	logger     logging.Logger
}

// NewService creates a new orchestrator service with the given configuration.
// reader may be nil when no previous output is compared.
func NewService(
	config Config,
	loader inventory.IProvider,
	discoverer discovery.IDiscoverer,
	writer report.IWriter,
	reader report.IReader,
	printer report.IPrinter,
	logger logging.Logger,
) *Service {
	return &Service{
		config:     config,
		loader:     loader,
		discoverer: discoverer,
		writer:     writer,
		reader:     reader,
		printer:    printer,
		logger:     logger,
	}
}

// NewDefaultService creates a new service with default implementations of
// dependencies around the given executor.
func NewDefaultService(config Config, executor remote.Executor, logger logging.Logger) *Service {
	d := discovery.NewDiscoverer(executor, logger)
	d.RequireIPv4 = config.RequireIPv4

	out := report.NewFileWriter(config.OutputPath)
	return NewService(config, inventory.NewLoaderWithLogger(logger), d, out, out, report.DefaultPrinter{}, logger)
}

// Run discovers every instance of the inventory in order. On the first
// failure it stops and returns the records gathered so far; those are
// already on disk.
func (s *Service) Run(ctx context.Context) ([]models.InstanceRecord, error) {
	if err := s.validateConfig(); err != nil {
		return nil, err
	}
	format, _ := report.ParseOutputFormat(s.getOutputFormat())

	names, err := s.loader.LoadMachineNames(s.config.InventoryPath)
	if err != nil {
		return nil, fmt.Errorf("error loading inventory: %w", err)
	}
	if len(names) == 0 {
		s.logger.Warn("Inventory %s lists no machines, %s is left untouched", s.config.InventoryPath, s.config.OutputPath)
		return []models.InstanceRecord{}, nil
	}
	s.logger.Info("Discovering network interfaces of %d instances", len(names))

	previous := s.loadPrevious()

	records := make([]models.InstanceRecord, 0, len(names))
	changes := make(map[string][]models.InterfaceChange)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return records, fmt.Errorf("interrupted before instance %s: %w", name, err)
		}

		record, err := s.discoverer.Discover(ctx, name)
		if err != nil {
			s.logger.Error("Discovery failed for %s: %v", name, err)
			return records, fmt.Errorf("instance %s: %w", name, err)
		}
		s.logger.Info("Discovered %d interfaces on %s", len(record.Interfaces), name)

		records = append(records, *record)
		if err := s.writer.WriteRecords(records); err != nil {
			return records, fmt.Errorf("error writing %s: %w", s.config.OutputPath, err)
		}
		s.logger.Debug("Wrote %d instances to %s", len(records), s.config.OutputPath)

		if previous != nil {
			s.recordChanges(previous[name], record, changes)
		}
	}

	if !s.config.Quiet {
		if err := s.printer.PrintSummary(records, changes, format); err != nil {
			return records, fmt.Errorf("error printing summary: %w", err)
		}
	}

	return records, nil
}

// validateConfig checks if the required configuration is provided.
func (s *Service) validateConfig() error {
	if s.config.InventoryPath == "" {
		return inventory.NewConfigError(inventory.ErrMissingField, "", "inventory path is required", nil)
	}
	if s.config.OutputPath == "" {
		return inventory.NewConfigError(inventory.ErrMissingField, "", "output path is required", nil)
	}
	if _, err := report.ParseOutputFormat(s.getOutputFormat()); err != nil {
		return inventory.NewConfigError(inventory.ErrMalformed, "", err.Error(), err)
	}
	if err := driftcheck.ValidateAttributes(s.config.AttributesToCheck); err != nil {
		return inventory.NewConfigError(inventory.ErrMalformed, "", "invalid comparison attributes", err)
	}
	return nil
}

// loadPrevious indexes the existing output document by instance name. A
// document that cannot be read only disables change reporting.
func (s *Service) loadPrevious() map[string]*models.InstanceRecord {
	if !s.config.CompareWithPrevious || s.reader == nil {
		return nil
	}

	records, err := s.reader.ReadRecords()
	if err != nil {
		s.logger.Warn("Cannot read previous output, change reporting disabled: %v", err)
		return nil
	}
	if records == nil {
		s.logger.Debug("No previous output at %s, nothing to compare", s.config.OutputPath)
		return nil
	}
	return driftcheck.IndexByName(records)
}

func (s *Service) recordChanges(previous, current *models.InstanceRecord, changes map[string][]models.InterfaceChange) {
	result, err := driftcheck.DetectChangesFor(previous, current, s.config.AttributesToCheck)
	if err != nil {
		s.logger.Warn("Cannot compare %s with the previous run: %v", current.Name, err)
		return
	}
	if result.IsNew {
		s.logger.Info("Instance %s was not in the previous output", current.Name)
		return
	}
	if !result.HasChanges {
		return
	}

	changes[current.Name] = result.Changes
	for _, c := range result.Changes {
		s.logger.Info("Instance %s interface %s: %s changed from %q to %q", current.Name, c.Interface, c.Attribute, c.Previous, c.Current)
	}
}

// getOutputFormat returns the configured format, table by default.
func (s *Service) getOutputFormat() string {
	if s.config.OutputFormat == "" {
		return string(report.OutputFormatTypeTABLE)
	}
	return s.config.OutputFormat
}
