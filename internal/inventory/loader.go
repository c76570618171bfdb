package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"netinventory/pkg/logging"
)

// DefaultLoader reads machine names from YAML, JSON or HCL inventory files.
type DefaultLoader struct {
	logger logging.Logger
}

// NewLoaderWithLogger creates a new instance of DefaultLoader with a specific logger
func NewLoaderWithLogger(logger logging.Logger) *DefaultLoader {
	return &DefaultLoader{
		logger: logger,
	}
}

// LoadMachineNames returns the machine_name of every machines entry, in
// document order. Duplicates are kept.
func (l DefaultLoader) LoadMachineNames(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".tf":
		return l.loadHCL(path)
	default:
		return l.loadYAML(path)
	}
}

// Validate loads the inventory and reports how many machines it declares.
func (l DefaultLoader) Validate(path string) (int, error) {
	names, err := l.LoadMachineNames(path)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

func (l DefaultLoader) loadYAML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrUnreadable, path, "cannot read inventory file", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewConfigError(ErrMalformed, path, "cannot decode inventory file", err)
	}

	if doc.Machines == nil {
		return nil, NewConfigError(ErrMissingField, path, "no machines collection found", nil)
	}

	names := make([]string, 0, len(*doc.Machines))
	for i, m := range *doc.Machines {
		if m.MachineName == nil || strings.TrimSpace(*m.MachineName) == "" {
			return nil, NewConfigError(ErrMissingField, path,
				fmt.Sprintf("machines[%d].machine_name is required", i), nil)
		}
		names = append(names, *m.MachineName)
	}

	l.logger.Debug("Loaded %d machines from %s", len(names), path)
	return names, nil
}

func (l DefaultLoader) loadHCL(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NewConfigError(ErrUnreadable, path, "cannot read inventory file", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, NewConfigError(ErrMalformed, path, "failed to parse HCL file", diags)
	}

	if file == nil || file.Body == nil {
		return nil, NewConfigError(ErrMalformed, path, "parsed HCL file is empty or invalid", nil)
	}

	var cfg HCLFile
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, NewConfigError(ErrMalformed, path, "failed to decode HCL body", diags)
	}

	if len(cfg.Machines) == 0 {
		return nil, NewConfigError(ErrMissingField, path, "no machine blocks found", nil)
	}

	names := make([]string, 0, len(cfg.Machines))
	for i, m := range cfg.Machines {
		if strings.TrimSpace(m.MachineName) == "" {
			return nil, NewConfigError(ErrMissingField, path,
				fmt.Sprintf("machine block %d has an empty machine_name", i), nil)
		}
		names = append(names, m.MachineName)
	}

	l.logger.Debug("Loaded %d machine blocks from %s", len(names), path)
	return names, nil
}
