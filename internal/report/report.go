package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"netinventory/internal/models"
)

// OutputFormatType defines the format types for the run summary.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents JSON output format
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeTABLE represents table output format
	OutputFormatTypeTABLE OutputFormatType = "TABLE"
)

// ParseOutputFormat accepts "json" or "table" in any case
func ParseOutputFormat(s string) (OutputFormatType, error) {
	switch f := OutputFormatType(strings.ToUpper(s)); f {
	case OutputFormatTypeJSON, OutputFormatTypeTABLE:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Summary is the JSON form of the run summary.
type Summary struct {
	Instances []models.InstanceRecord             `json:"instances"`
	Changes   map[string][]models.InterfaceChange `json:"changes,omitempty"`
}

// PrintSummary prints the discovered interfaces, and the changes against the
// previous run if any, to w.
func PrintSummary(w io.Writer, records []models.InstanceRecord, changes map[string][]models.InterfaceChange, outputFormat OutputFormatType) error {
	switch outputFormat {
	case OutputFormatTypeJSON:
		return printJSONSummary(w, records, changes)
	case OutputFormatTypeTABLE:
		return printTableSummary(w, records, changes)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func printJSONSummary(w io.Writer, records []models.InstanceRecord, changes map[string][]models.InterfaceChange) error {
	if records == nil {
		records = []models.InstanceRecord{}
	}
	if len(changes) == 0 {
		changes = nil
	}
	data, err := json.MarshalIndent(Summary{Instances: records, Changes: changes}, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling summary to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTableSummary(w io.Writer, records []models.InstanceRecord, changes map[string][]models.InterfaceChange) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(writer, "INSTANCE\tINTERFACE\tIPV4\tMAC")
	fmt.Fprintln(writer, "--------\t---------\t----\t---")

	interfaces := 0
	for _, r := range records {
		if len(r.Interfaces) == 0 {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", r.Name, "<none>", "", "")
			continue
		}
		for _, iface := range r.Interfaces {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
				r.Name,
				iface.Name,
				formatValueForTable(iface.IPv4Address),
				formatValueForTable(iface.MACAddress))
			interfaces++
		}
	}

	changed := 0
	for _, r := range records {
		cs := changes[r.Name]
		if len(cs) == 0 {
			continue
		}
		changed++
		fmt.Fprintf(writer, "\nCHANGES FOR:\t%s\n\n", r.Name)
		fmt.Fprintln(writer, "INTERFACE\tATTRIBUTE\tPREVIOUS\tCURRENT")
		fmt.Fprintln(writer, "---------\t---------\t--------\t-------")
		for _, c := range cs {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
				c.Interface,
				c.Attribute,
				formatValueForTable(c.Previous),
				formatValueForTable(c.Current))
		}
	}

	fmt.Fprintln(writer, "")
	fmt.Fprintf(writer, "Summary: %d instances, %d interfaces, %d instances changed\n", len(records), interfaces, changed)

	return writer.Flush()
}

// formatValueForTable formats values for better display in the table
func formatValueForTable(s string) string {
	if s == "" {
		return "<empty>"
	}
	return s
}

// DefaultPrinter is the default implementation of the report printer
type DefaultPrinter struct {
	// Out defaults to os.Stdout
	Out io.Writer
}

// PrintSummary implements the printer interface
func (p DefaultPrinter) PrintSummary(records []models.InstanceRecord, changes map[string][]models.InterfaceChange, format OutputFormatType) error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	return PrintSummary(out, records, changes, format)
}
