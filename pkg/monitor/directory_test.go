package monitor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineworks.id/machine-monitor-service/pkg/common"
	"lineworks.id/machine-monitor-service/pkg/models"
	_ "lineworks.id/machine-monitor-service/pkg/testing"
)

func TestResolve(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	machine := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")

	dbID, err := mon.Directory.Resolve(machine.MachineCode)
	require.NoError(t, err)
	assert.Equal(t, machine.ID, dbID)
}

func TestResolve_UnknownCode(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	// Unregistered devices are an expected condition, not an error.
	dbID, err := mon.Directory.Resolve(9999)
	require.NoError(t, err)
	assert.Equal(t, CodeNotFound, dbID)
}

func TestAddMachine_DuplicateCode(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	machine := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")

	clash := models.Machine{
		MachineCode:    machine.MachineCode,
		Name:           uuid.NewString(),
		LineProduction: "Line B",
		Process:        "Cutting",
	}
	err := mon.Directory.AddMachine(&clash)
	require.ErrorIs(t, err, ErrDuplicateCode)

	// The rejected write must leave no row behind.
	var count int64
	require.NoError(t, mon.Db.Conn.Model(&models.Machine{}).
		Where("name = ?", clash.Name).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUpdateMachine_DuplicateCode(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	first := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")
	second := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Cutting")

	second.MachineCode = first.MachineCode
	err := mon.Directory.UpdateMachine(&second)
	require.ErrorIs(t, err, ErrDuplicateCode)
}

func TestUpdateMachine_KeepOwnCode(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	machine := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")

	// Updating without changing the code must not collide with itself.
	machine.Process = "Molding"
	require.NoError(t, mon.Directory.UpdateMachine(&machine))
}

func TestDescribe_CacheAndInvalidate(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	machine := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")

	info, err := mon.Directory.Describe(machine.ID)
	require.NoError(t, err)
	assert.Equal(t, machine.Name, info.Name)
	assert.Equal(t, "Line A", info.Line)

	// Mutate the row underneath the cache: Describe keeps serving the
	// stale snapshot until Invalidate drops it.
	require.NoError(t, mon.Db.Conn.Model(&models.Machine{}).
		Where("id = ?", machine.ID).Update("process", "Molding").Error)

	info, err = mon.Directory.Describe(machine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Winding", info.Process)

	mon.Directory.Invalidate(machine.ID)

	info, err = mon.Directory.Describe(machine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Molding", info.Process)
}

func TestUpdateMachine_InvalidatesCache(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	machine := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")

	_, err := mon.Directory.Describe(machine.ID)
	require.NoError(t, err)

	machine.Process = "Molding"
	require.NoError(t, mon.Directory.UpdateMachine(&machine))

	info, err := mon.Directory.Describe(machine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Molding", info.Process)
}

func TestDeleteMachine_CascadesReadings(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	machine := RegisterTestMachine(t, mon, uuid.NewString(), "Line A", "Winding")

	reading := ParsedReading{
		MachineCode: machine.MachineCode,
		Status:      1,
		Count:       10,
		CycleTime:   5.0,
	}
	require.NoError(t, mon.Writer.Save(machine.ID, &reading))

	require.NoError(t, mon.Directory.DeleteMachine(machine.ID))

	var count int64
	require.NoError(t, mon.Db.Conn.Model(&models.Machine{}).
		Where("id = ?", machine.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	require.NoError(t, mon.Db.Conn.Model(&models.CurrentReading{}).
		Where("id = ?", machine.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	for _, table := range []string{"shift_1", "shift_2", "shift_3"} {
		require.NoError(t, mon.Db.Conn.Table(table).
			Where("id = ?", machine.ID).Count(&count).Error)
		assert.EqualValuesf(t, 0, count, "table %s", table)
	}
}

func TestListMachines_Ordering(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	RegisterTestMachine(t, mon, uuid.NewString(), "ZZ-Ordering-B", "Winding")
	RegisterTestMachine(t, mon, uuid.NewString(), "ZZ-Ordering-A", "Cutting")

	machines, err := mon.Directory.ListMachines()
	require.NoError(t, err)

	var lines []string
	for _, m := range machines {
		if m.LineProduction == "ZZ-Ordering-A" || m.LineProduction == "ZZ-Ordering-B" {
			lines = append(lines, m.LineProduction)
		}
	}
	assert.Equal(t, []string{"ZZ-Ordering-A", "ZZ-Ordering-B"}, lines)
}
