package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lineworks.id/machine-monitor-service/pkg/common"
	_ "lineworks.id/machine-monitor-service/pkg/testing"
)

func appendExportFixture(t *testing.T, mon *Monitor, logTime time.Time) {
	t.Helper()

	winder := MachineInfo{Name: "Winder 3", Line: "Line A", Process: "Winding"}
	cutter := MachineInfo{Name: "Cutter 1", Line: "Line B", Process: "Cutting"}

	readings := []struct {
		dbID int
		info MachineInfo
		r    ParsedReading
	}{
		{5, winder, ParsedReading{MachineCode: 101, Status: 1, Count: 100, CycleTime: 7.5}},
		{6, cutter, ParsedReading{MachineCode: 102, Status: 1, Count: 40, CycleTime: 3.2}},
		{5, winder, ParsedReading{MachineCode: 101, Status: 1, Count: 120, CycleTime: 7.6}},
	}
	for _, item := range readings {
		require.NoError(t, mon.flatLog.Append(item.dbID, item.info, &item.r, logTime))
	}
}

func TestFinalize_MissingLogIsNoop(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	// Nothing logged for that shift: success, no artifact.
	err := mon.Exporter.Finalize(ShiftName2, at(2030, time.January, 1, 0, 0))
	assert.NoError(t, err)
}

func TestFinalize_LogAndSummarySheets(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	logTime := at(2024, time.June, 2, 10, 0)
	appendExportFixture(t, mon, logTime)

	shiftDate := at(2024, time.June, 2, 0, 0)
	require.NoError(t, mon.Exporter.Finalize(ShiftName1, shiftDate))

	excelPath := mon.flatLog.Path(shiftDate, ShiftName1)
	excelPath = excelPath[:len(excelPath)-len(".csv")] + ".xlsx"

	workbook, err := excelize.OpenFile(excelPath)
	require.NoError(t, err)
	defer workbook.Close()

	assert.ElementsMatch(t, []string{"Log", "Summary"}, workbook.GetSheetList())

	logRows, err := workbook.GetRows("Log")
	require.NoError(t, err)
	require.Len(t, logRows, 4) // header + all three readings
	assert.Equal(t, "ID", logRows[0][0])
	assert.Equal(t, "5", logRows[1][0])
	assert.Equal(t, "100", logRows[1][5])

	// Summary reduces to the latest row per machine, first-appearance order.
	summaryRows, err := workbook.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summaryRows, 3)
	assert.Equal(t, "5", summaryRows[1][0])
	assert.Equal(t, "120", summaryRows[1][5])
	assert.Equal(t, "6", summaryRows[2][0])
	assert.Equal(t, "40", summaryRows[2][5])
}

func TestFinalize_Idempotent(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	logTime := at(2024, time.June, 2, 10, 0)
	appendExportFixture(t, mon, logTime)

	shiftDate := at(2024, time.June, 2, 0, 0)
	require.NoError(t, mon.Exporter.Finalize(ShiftName1, shiftDate))

	excelPath := mon.flatLog.Path(shiftDate, ShiftName1)
	excelPath = excelPath[:len(excelPath)-len(".csv")] + ".xlsx"

	firstRun := readAllSheets(t, excelPath)

	// Rerunning over the same log regenerates the same artifact.
	require.NoError(t, mon.Exporter.Finalize(ShiftName1, shiftDate))
	secondRun := readAllSheets(t, excelPath)

	assert.Equal(t, firstRun, secondRun)
}

func readAllSheets(t *testing.T, path string) map[string][][]string {
	t.Helper()

	workbook, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer workbook.Close()

	sheets := make(map[string][][]string)
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		require.NoError(t, err)
		sheets[sheet] = rows
	}
	return sheets
}
