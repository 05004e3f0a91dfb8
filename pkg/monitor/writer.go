package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lineworks.id/machine-monitor-service/pkg/common"
	"lineworks.id/machine-monitor-service/pkg/models"
)

// MachineLockStore hands out one mutex per database id: db_id -> mutex.
// Writes for the same machine queue up behind it; unrelated machines never
// contend.
type MachineLockStore struct {
	locks map[int]*sync.Mutex
	mu    sync.Mutex
}

func NewMachineLockStore() *MachineLockStore {
	return &MachineLockStore{locks: make(map[int]*sync.Mutex)}
}

func (s *MachineLockStore) GetLock(dbID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[dbID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[dbID] = lock
	}
	return lock
}

func shiftReadingModel(shiftName string, cols models.ReadingColumns) any {
	switch shiftName {
	case ShiftName1:
		return &models.Shift1Reading{ReadingColumns: cols}
	case ShiftName2:
		return &models.Shift2Reading{ReadingColumns: cols}
	default:
		return &models.Shift3Reading{ReadingColumns: cols}
	}
}

// save upserts the reading into the current table and the active shift
// table inside one transaction, holding the machine's lock for the duration
// of the database round-trip only.
func (m *Monitor) save(dbID int, reading *ParsedReading) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonWriter),
	)

	lock := m.locks.GetLock(dbID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	cols := models.ReadingColumns{
		ID:              dbID,
		Status:          reading.Status,
		Count:           reading.Count,
		CycleTime:       reading.CycleTime,
		AvgCycleTime:    reading.AvgCycleTime,
		PartHours:       reading.PartHours,
		DowntimeSeconds: reading.DowntimeSeconds,
		UptimeSeconds:   reading.UptimeSeconds,
		DowntimePercent: reading.DowntimePercent,
		UptimePercent:   reading.UptimePercent,
		LastUpdate:      now,
	}
	window := CurrentWindow(now)

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}

	err := m.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(upsert).
			Create(&models.CurrentReading{ReadingColumns: cols}).Error; err != nil {
			return err
		}
		return tx.Clauses(upsert).
			Create(shiftReadingModel(window.Name, cols)).Error
	})

	if err == nil {
		logger.Info("Upserted reading",
			zap.Int("id", dbID), zap.String("shift", window.Name))
	}

	return err
}

type IWriterImpl struct {
	mon *Monitor
}

func (iw *IWriterImpl) Save(dbID int, reading *ParsedReading) error {
	return iw.mon.save(dbID, reading)
}

func (m *Monitor) GetIWriter() IWriter {
	return &IWriterImpl{mon: m}
}
