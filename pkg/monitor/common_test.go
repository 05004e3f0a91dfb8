package monitor

import (
	"sync/atomic"
	"testing"

	"go.uber.org/mock/gomock"
	"lineworks.id/machine-monitor-service/pkg/db"
	"lineworks.id/machine-monitor-service/pkg/models"
)

// The shared in-memory database survives across tests in this package, so
// every test registers machines under codes of its own.
var nextTestCode atomic.Int64

func init() {
	nextTestCode.Store(10000)
}

func NewTestMachineCode() int {
	return int(nextTestCode.Add(1))
}

func GetMockMonitorWithMemorySqliteDialector(t *testing.T, useMockDirectory, useMockWriter, useMockExporter bool) (
	*gomock.Controller,
	*Monitor,
	*MockIDirectory,
	*MockIWriter,
	*MockIExporter,
) {
	ctrl := gomock.NewController(t)

	mockDirectory := NewMockIDirectory(ctrl)
	mockWriter := NewMockIWriter(ctrl)
	mockExporter := NewMockIExporter(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	monInstance := New(*dbInstance, t.TempDir())

	directoryService := monInstance.GetIDirectory()
	if useMockDirectory {
		directoryService = mockDirectory
	}

	writerService := monInstance.GetIWriter()
	if useMockWriter {
		writerService = mockWriter
	}

	exporterService := monInstance.GetIExporter()
	if useMockExporter {
		exporterService = mockExporter
	}

	monInstance.WithServices(ServiceOpts{
		Directory: directoryService,
		Writer:    writerService,
		Exporter:  exporterService,
	})

	return ctrl, monInstance, mockDirectory, mockWriter, mockExporter
}

// RegisterTestMachine inserts a directory row with a fresh machine code and
// returns it.
func RegisterTestMachine(t *testing.T, mon *Monitor, name, line, process string) models.Machine {
	t.Helper()

	machine := models.Machine{
		MachineCode:    NewTestMachineCode(),
		Name:           name,
		LineProduction: line,
		Process:        process,
	}
	if err := mon.Directory.AddMachine(&machine); err != nil {
		t.Fatalf("failed to register test machine: %v", err)
	}
	return machine
}
