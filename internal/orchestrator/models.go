package orchestrator

// Config contains all the parameters needed for a discovery run.
type Config struct {
	InventoryPath       string   // Path to the inventory listing the machines
	OutputPath          string   // Path of the JSON output document
	OutputFormat        string   // Summary format (json or table)
	CompareWithPrevious bool     // Report changes against the existing output document
	AttributesToCheck   []string // Attributes compared against the previous run (empty = all)
	RequireIPv4         bool     // Fail when a device has no IPv4 address
	Quiet               bool     // Do not print the summary
}
