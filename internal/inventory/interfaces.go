package inventory

// IProvider is the interface for loading the instance inventory
//
//go:generate mockery --name=IProvider --output=./mocks
type IProvider interface {
	LoadMachineNames(path string) ([]string, error)
}
