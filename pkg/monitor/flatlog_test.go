package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatLog_Path(t *testing.T) {
	flatLog := NewFlatLog("/var/data")

	path := flatLog.Path(at(2024, time.June, 2, 0, 0), ShiftName1)
	assert.Equal(t,
		filepath.Join("/var/data", "2024-06-02", "data_log_shift_1_2024-06-02.csv"),
		path)
}

func TestFlatLog_AppendCreatesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	flatLog := NewFlatLog(dir)

	info := MachineInfo{Name: "Winder 3", Line: "Line A", Process: "Winding"}
	reading := ParsedReading{
		MachineCode:     101,
		Status:          1,
		Count:           250,
		CycleTime:       7.5,
		AvgCycleTime:    8.0,
		PartHours:       3,
		DowntimeSeconds: 65,
		UptimeSeconds:   3725,
	}
	logTime := at(2024, time.June, 2, 10, 0)

	require.NoError(t, flatLog.Append(5, info, &reading, logTime))
	require.NoError(t, flatLog.Append(5, info, &reading, logTime))

	content, err := os.ReadFile(flatLog.Path(logTime, ShiftName1))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"ID`NAME`LINE`PROCESS`STATUS`COUNT`CYCLE`AVG CYCLE`PART-HOURS`DOWNTIME`UPTIME`LOG TIME",
		lines[0])

	cols := splitFlatLogLine(lines[1])
	require.Len(t, cols, 12)
	assert.Equal(t, "5", cols[0])
	assert.Equal(t, "Winder 3", cols[1])
	assert.Equal(t, "Active", cols[4])
	assert.Equal(t, "250", cols[5])
	assert.Equal(t, "7.50", cols[6])
	assert.Equal(t, "00:01:05", cols[9])
	assert.Equal(t, "01:02:05", cols[10])
	assert.Equal(t, "2024-06-02 10:00:00", cols[11])
}

func TestFlatLog_AppendOvernightShiftFolder(t *testing.T) {
	dir := t.TempDir()
	flatLog := NewFlatLog(dir)

	reading := ParsedReading{MachineCode: 101, Status: 0, Count: 1}
	logTime := at(2024, time.June, 2, 2, 0)

	require.NoError(t, flatLog.Append(5, UnknownMachineInfo, &reading, logTime))

	// 02:00 belongs to the overnight shift dated the previous day.
	_, err := os.Stat(filepath.Join(dir, "2024-06-01", "data_log_shift_3_2024-06-01.csv"))
	assert.NoError(t, err)
}

func TestSecondsToClock(t *testing.T) {
	assert.Equal(t, "00:00:00", SecondsToClock(0))
	assert.Equal(t, "00:01:05", SecondsToClock(65.7))
	assert.Equal(t, "02:46:40", SecondsToClock(10000))
}

func TestFlatLogField_EscapeRoundTrip(t *testing.T) {
	line := strings.Join([]string{
		"7",
		escapeFlatLogField("Winder, big"),
		escapeFlatLogField("Line `A`"),
		"Winding",
	}, FlatLogDelimiter)

	cols := splitFlatLogLine(line)
	require.Len(t, cols, 4)
	assert.Equal(t, "Winder, big", cols[1])
	assert.Equal(t, "Line `A`", cols[2])
}
