package monitor

import (
	"time"

	"lineworks.id/machine-monitor-service/pkg/db"
	"lineworks.id/machine-monitor-service/pkg/models"
)

type IDirectory interface {
	Resolve(machineCode int) (int, error)
	Describe(dbID int) (MachineInfo, error)
	Invalidate(dbID int)
	InvalidateAll()
	ListMachines() ([]models.Machine, error)
	AddMachine(input *models.Machine) error
	UpdateMachine(input *models.Machine) error
	DeleteMachine(dbID int) error
}

type IWriter interface {
	Save(dbID int, reading *ParsedReading) error
}

type IExporter interface {
	Finalize(shiftName string, shiftDate time.Time) error
}

type Monitor struct {
	Db        db.DB
	Directory IDirectory
	Writer    IWriter
	Exporter  IExporter

	flatLog  *FlatLog
	dirCache *directoryCache
	locks    *MachineLockStore
}

// New builds a Monitor whose caches and lock store are private to this
// instance, so tests get clean state by constructing a fresh one.
func New(dbInstance db.DB, exportBaseDir string) *Monitor {
	return &Monitor{
		Db:       dbInstance,
		flatLog:  NewFlatLog(exportBaseDir),
		dirCache: newDirectoryCache(),
		locks:    NewMachineLockStore(),
	}
}

func (m *Monitor) FlatLog() *FlatLog {
	return m.flatLog
}

type ServiceOpts struct {
	Directory IDirectory
	Writer    IWriter
	Exporter  IExporter
}

func (m *Monitor) WithServices(opts ServiceOpts) *Monitor {
	if opts.Directory != nil {
		m.Directory = opts.Directory
	}
	if opts.Writer != nil {
		m.Writer = opts.Writer
	}
	if opts.Exporter != nil {
		m.Exporter = opts.Exporter
	}
	return m
}
