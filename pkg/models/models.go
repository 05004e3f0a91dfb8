package models

import "time"

// Machine is one row of the machine directory. MachineCode is the numeric
// identifier the physical device reports for itself; ID is the database
// identity every reading table keys on.
type Machine struct {
	ID             int `gorm:"primaryKey"`
	MachineCode    int `gorm:"uniqueIndex"`
	Name           string
	LineProduction string
	Process        string
	Remark         string
}

// ReadingColumns is the shared column set of the current-readings table and
// the three per-shift tables. IDs are caller-supplied (they mirror the
// machine directory), so auto increment is off.
type ReadingColumns struct {
	ID              int `gorm:"primaryKey;autoIncrement:false"`
	Status          int
	Count           int
	CycleTime       float64
	AvgCycleTime    float64
	PartHours       int
	DowntimeSeconds float64
	UptimeSeconds   float64
	DowntimePercent int
	UptimePercent   int
	LastUpdate      time.Time
}

type CurrentReading struct {
	ReadingColumns
}

func (CurrentReading) TableName() string { return "data_realtime" }

type Shift1Reading struct {
	ReadingColumns
}

func (Shift1Reading) TableName() string { return "shift_1" }

type Shift2Reading struct {
	ReadingColumns
}

func (Shift2Reading) TableName() string { return "shift_2" }

type Shift3Reading struct {
	ReadingColumns
}

func (Shift3Reading) TableName() string { return "shift_3" }
