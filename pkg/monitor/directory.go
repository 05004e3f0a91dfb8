package monitor

import (
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"lineworks.id/machine-monitor-service/pkg/common"
	"lineworks.id/machine-monitor-service/pkg/models"
)

// CodeNotFound is the sentinel Resolve returns for an unregistered machine
// code. Unknown devices are an expected condition, not an error.
const CodeNotFound = -1

var ErrDuplicateCode = errors.New("machine code already registered")

// MachineInfo is the descriptive snapshot attached to flat-log rows.
type MachineInfo struct {
	Name    string
	Line    string
	Process string
}

// UnknownMachineInfo stands in when no directory row backs a reading.
var UnknownMachineInfo = MachineInfo{Name: "Unknown", Line: "Unknown", Process: "Unknown"}

type directoryCache struct {
	mu   sync.Mutex
	info map[int]MachineInfo
}

func newDirectoryCache() *directoryCache {
	return &directoryCache{info: make(map[int]MachineInfo)}
}

func (c *directoryCache) get(dbID int) (MachineInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.info[dbID]
	return info, ok
}

func (c *directoryCache) put(dbID int, info MachineInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info[dbID] = info
}

func (c *directoryCache) drop(dbID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.info, dbID)
}

func (c *directoryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = make(map[int]MachineInfo)
}

func (m *Monitor) resolve(machineCode int) (int, error) {
	var machine models.Machine
	err := m.Db.Conn.First(&machine, "machine_code = ?", machineCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CodeNotFound, nil
	}
	if err != nil {
		return CodeNotFound, err
	}
	return machine.ID, nil
}

func (m *Monitor) describe(dbID int) (MachineInfo, error) {
	if info, ok := m.dirCache.get(dbID); ok {
		return info, nil
	}

	var machine models.Machine
	if err := m.Db.Conn.First(&machine, "id = ?", dbID).Error; err != nil {
		return UnknownMachineInfo, err
	}

	info := MachineInfo{
		Name:    machine.Name,
		Line:    machine.LineProduction,
		Process: machine.Process,
	}
	m.dirCache.put(dbID, info)
	return info, nil
}

func (m *Monitor) listMachines() ([]models.Machine, error) {
	var machines []models.Machine
	err := m.Db.Conn.
		Order("line_production asc, id asc").
		Find(&machines).Error
	return machines, err
}

// codeTaken checks machine_code uniqueness, ignoring the row with excludeID
// so an update does not collide with itself.
func (m *Monitor) codeTaken(machineCode int, excludeID int) (bool, error) {
	var count int64
	err := m.Db.Conn.Model(&models.Machine{}).
		Where("machine_code = ? AND id <> ?", machineCode, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (m *Monitor) addMachine(input *models.Machine) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonDirectory),
	)

	taken, err := m.codeTaken(input.MachineCode, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateCode
	}

	if err := m.Db.Conn.Create(input).Error; err != nil {
		return err
	}

	logger.Info("Machine registered",
		zap.Int("id", input.ID), zap.Int("machine_code", input.MachineCode))
	return nil
}

func (m *Monitor) updateMachine(input *models.Machine) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonDirectory),
	)

	taken, err := m.codeTaken(input.MachineCode, input.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateCode
	}

	if err := m.Db.Conn.Save(input).Error; err != nil {
		return err
	}

	// The descriptive snapshot changed; readers must not see the stale one.
	m.dirCache.drop(input.ID)

	logger.Info("Machine updated",
		zap.Int("id", input.ID), zap.Int("machine_code", input.MachineCode))
	return nil
}

func (m *Monitor) deleteMachine(dbID int) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonDirectory),
	)

	err := m.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CurrentReading{}, "id = ?", dbID).Error; err != nil {
			return err
		}
		for _, shiftModel := range []any{
			&models.Shift1Reading{}, &models.Shift2Reading{}, &models.Shift3Reading{},
		} {
			if err := tx.Delete(shiftModel, "id = ?", dbID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Machine{}, "id = ?", dbID).Error
	})
	if err != nil {
		return err
	}

	m.dirCache.drop(dbID)

	logger.Info("Machine deleted", zap.Int("id", dbID))
	return nil
}

type IDirectoryImpl struct {
	mon *Monitor
}

func (id *IDirectoryImpl) Resolve(machineCode int) (int, error) {
	return id.mon.resolve(machineCode)
}

func (id *IDirectoryImpl) Describe(dbID int) (MachineInfo, error) {
	return id.mon.describe(dbID)
}

func (id *IDirectoryImpl) Invalidate(dbID int) {
	id.mon.dirCache.drop(dbID)
}

func (id *IDirectoryImpl) InvalidateAll() {
	id.mon.dirCache.clear()
}

func (id *IDirectoryImpl) ListMachines() ([]models.Machine, error) {
	return id.mon.listMachines()
}

func (id *IDirectoryImpl) AddMachine(input *models.Machine) error {
	return id.mon.addMachine(input)
}

func (id *IDirectoryImpl) UpdateMachine(input *models.Machine) error {
	return id.mon.updateMachine(input)
}

func (id *IDirectoryImpl) DeleteMachine(dbID int) error {
	return id.mon.deleteMachine(dbID)
}

func (m *Monitor) GetIDirectory() IDirectory {
	return &IDirectoryImpl{mon: m}
}
