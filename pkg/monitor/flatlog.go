package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FlatLogDelimiter separates flat-log columns. Backtick keeps machine
// names with commas intact without CSV-style quoting of every field.
const FlatLogDelimiter = "`"

const flatLogHeader = "ID`NAME`LINE`PROCESS`STATUS`COUNT`CYCLE`AVG CYCLE`PART-HOURS`DOWNTIME`UPTIME`LOG TIME"

// FlatLog is the append-only per-shift text log that feeds the spreadsheet
// export. It is a secondary, best-effort view; the relational tables remain
// the system of record.
type FlatLog struct {
	baseDir string
	mu      sync.Mutex
}

func NewFlatLog(baseDir string) *FlatLog {
	return &FlatLog{baseDir: baseDir}
}

// Path derives the log location for one shift instance:
// <base>/<yyyy-MM-dd>/data_log_<shift>_<yyyy-MM-dd>.csv
func (f *FlatLog) Path(shiftDate time.Time, shiftName string) string {
	day := shiftDate.Format("2006-01-02")
	return filepath.Join(f.baseDir, day, fmt.Sprintf("data_log_%s_%s.csv", shiftName, day))
}

// Append writes one accepted reading under the shift active at logTime,
// creating the day folder and header row on first use.
func (f *FlatLog) Append(dbID int, info MachineInfo, reading *ParsedReading, logTime time.Time) error {
	window := CurrentWindow(logTime)
	path := f.Path(window.Date, window.Name)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if isNew {
		if _, err := fmt.Fprintln(file, flatLogHeader); err != nil {
			return err
		}
	}

	status := "Inactive"
	if reading.Status == 1 {
		status = "Active"
	}

	row := strings.Join([]string{
		fmt.Sprintf("%d", dbID),
		escapeFlatLogField(info.Name),
		escapeFlatLogField(info.Line),
		escapeFlatLogField(info.Process),
		status,
		fmt.Sprintf("%d", reading.Count),
		fmt.Sprintf("%.2f", reading.CycleTime),
		fmt.Sprintf("%.2f", reading.AvgCycleTime),
		fmt.Sprintf("%d", reading.PartHours),
		SecondsToClock(reading.DowntimeSeconds),
		SecondsToClock(reading.UptimeSeconds),
		logTime.Format("2006-01-02 15:04:05"),
	}, FlatLogDelimiter)

	_, err = fmt.Fprintln(file, row)
	return err
}

// SecondsToClock renders a duration in seconds as hh:mm:ss.
func SecondsToClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func escapeFlatLogField(field string) string {
	if strings.Contains(field, FlatLogDelimiter) || strings.Contains(field, ",") {
		return `"` + field + `"`
	}
	return field
}

// splitFlatLogLine undoes escapeFlatLogField: backticks inside quotes do
// not split.
func splitFlatLogLine(line string) []string {
	var fields []string
	var val strings.Builder
	inQuotes := false
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == '`' && !inQuotes:
			fields = append(fields, val.String())
			val.Reset()
		default:
			val.WriteRune(c)
		}
	}
	fields = append(fields, val.String())
	return fields
}
