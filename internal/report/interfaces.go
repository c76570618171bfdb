package report

import "netinventory/internal/models"

// IWriter persists the output document
//
//go:generate mockery --name=IWriter --output=./mocks
type IWriter interface {
	WriteRecords(records []models.InstanceRecord) error
}

// IReader loads the output document of a previous run
//
//go:generate mockery --name=IReader --output=./mocks
type IReader interface {
	ReadRecords() ([]models.InstanceRecord, error)
}

// IPrinter is the interface for printing the run summary
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintSummary(records []models.InstanceRecord, changes map[string][]models.InterfaceChange, format OutputFormatType) error
}
