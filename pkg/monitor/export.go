package monitor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"lineworks.id/machine-monitor-service/pkg/common"
)

const (
	exportSheetLog     = "Log"
	exportSheetSummary = "Summary"
)

// finalize regenerates the spreadsheet for one shift instance from its flat
// log. A missing log means the shift saw no readings; that is a no-op, not
// an error. Rerunning overwrites the previous artifact wholesale.
func (m *Monitor) finalize(shiftName string, shiftDate time.Time) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonExport),
	)

	csvPath := m.flatLog.Path(shiftDate, shiftName)
	lines, err := readFlatLogLines(csvPath)
	if os.IsNotExist(err) {
		logger.Info("No flat log for shift, nothing to export",
			zap.String("shift", shiftName), zap.String("path", csvPath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read flat log: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName(workbook.GetSheetName(0), exportSheetLog); err != nil {
		return fmt.Errorf("rename log sheet: %w", err)
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSheetRows(workbook, exportSheetLog, lines, headerStyle); err != nil {
		return err
	}

	if _, err := workbook.NewSheet(exportSheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSheetRows(workbook, exportSheetSummary, summarizeFlatLog(lines), headerStyle); err != nil {
		return err
	}

	excelPath := strings.TrimSuffix(csvPath, ".csv") + ".xlsx"
	if err := workbook.SaveAs(excelPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	logger.Info("Excel export written",
		zap.String("shift", shiftName),
		zap.String("date", shiftDate.Format("2006-01-02")),
		zap.String("path", excelPath))
	return nil
}

func readFlatLogLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// writeSheetRows writes the header line as styled text and every following
// line with numeric-looking cells rendered as numbers.
func writeSheetRows(workbook *excelize.File, sheet string, lines []string, headerStyle int) error {
	widest := 0
	for i, line := range lines {
		cols := splitFlatLogLine(line)
		if len(cols) > widest {
			widest = len(cols)
		}
		for j, col := range cols {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell coordinates: %w", err)
			}
			if i > 0 {
				if num, err := strconv.ParseFloat(col, 64); err == nil {
					if err := workbook.SetCellValue(sheet, cell, num); err != nil {
						return fmt.Errorf("set cell %s: %w", cell, err)
					}
					continue
				}
			}
			if err := workbook.SetCellValue(sheet, cell, col); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if widest == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(widest)
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := workbook.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	return workbook.SetColWidth(sheet, "A", lastCol, 16)
}

// summarizeFlatLog reduces the log to one row per machine id, keeping the
// latest values. Rows come out in first-appearance order so repeated
// finalize calls over the same log produce identical sheets.
func summarizeFlatLog(lines []string) []string {
	latest := make(map[string]string)
	var order []string

	for _, line := range lines[1:] {
		cols := splitFlatLogLine(line)
		if len(cols) == 0 || cols[0] == "" {
			continue
		}
		if _, seen := latest[cols[0]]; !seen {
			order = append(order, cols[0])
		}
		latest[cols[0]] = line
	}

	return append([]string{lines[0]}, common.Mapper(order, func(id string) string {
		return latest[id]
	})...)
}

type IExporterImpl struct {
	mon *Monitor
}

func (ie *IExporterImpl) Finalize(shiftName string, shiftDate time.Time) error {
	return ie.mon.finalize(shiftName, shiftDate)
}

func (m *Monitor) GetIExporter() IExporter {
	return &IExporterImpl{mon: m}
}
