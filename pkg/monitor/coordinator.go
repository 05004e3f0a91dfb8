package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"lineworks.id/machine-monitor-service/pkg/common"
)

// Coordinator glues the pipeline together: raw line -> parser -> directory
// -> writer, plus the shift-rollover timer that drives exports.
type Coordinator struct {
	mon          *Monitor
	parser       *Parser
	lastWindow   ShiftWindow
	tickInterval time.Duration
}

func NewCoordinator(mon *Monitor, cache *DedupCache) *Coordinator {
	return &Coordinator{
		mon:          mon,
		parser:       NewParser(cache),
		tickInterval: time.Second,
	}
}

// Run consumes raw frames until ctx is cancelled or the line channel
// closes. On exit it schedules one final export for the window active at
// stop time; it does not wait for in-flight background work.
func (c *Coordinator) Run(ctx context.Context, lines <-chan string) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonCoordinate),
	)

	c.lastWindow = CurrentWindow(time.Now())
	logger.Info("Coordinator running",
		zap.String("shift", c.lastWindow.Name),
		zap.String("shift_date", c.lastWindow.Date.Format("2006-01-02")))

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()
	defer func() {
		logger.Info("Coordinator stopped, scheduling final export",
			zap.String("shift", c.lastWindow.Name))
		c.finalizeInBackground(c.lastWindow)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			c.ProcessLine(line)
		case now := <-ticker.C:
			c.checkShiftRollover(now)
		}
	}
}

// ProcessLine runs one frame through the whole ingestion path. Every
// failure below this point is recovered locally: logged and dropped.
func (c *Coordinator) ProcessLine(line string) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonCoordinate),
	)

	parserLogger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonParser),
	)

	reading, outcome, err := c.parser.Parse(line)
	if err != nil {
		parserLogger.Debug("Frame dropped", zap.String("line", line), zap.Error(err))
		return
	}

	switch outcome {
	case OutcomeAllZero:
		parserLogger.Debug("All-zero frame ignored", zap.Int("machine_code", reading.MachineCode))
		return
	case OutcomeDuplicate:
		return
	}

	dbID, err := c.mon.Directory.Resolve(reading.MachineCode)
	if err != nil {
		logger.Error("Directory lookup failed",
			zap.Int("machine_code", reading.MachineCode), zap.Error(err))
		return
	}
	if dbID == CodeNotFound {
		logger.Warn("Unknown machine code, reading ignored",
			zap.Int("machine_code", reading.MachineCode))
		return
	}

	if err := c.mon.Writer.Save(dbID, &reading); err != nil {
		logger.Error("Persist failed, reading dropped",
			zap.Int("id", dbID), zap.Error(err))
		return
	}

	// Snapshot the metadata now; the append runs after this call returns
	// and must not race machine CRUD.
	info, err := c.mon.Directory.Describe(dbID)
	if err != nil {
		info = UnknownMachineInfo
	}

	logTime := time.Now()
	go func() {
		if err := c.mon.flatLog.Append(dbID, info, &reading, logTime); err != nil {
			logger.Error("Flat log append failed", zap.Int("id", dbID), zap.Error(err))
		}
	}()
}

func (c *Coordinator) checkShiftRollover(now time.Time) {
	window := CurrentWindow(now)
	if window.Equal(c.lastWindow) {
		return
	}

	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonCoordinate),
	)
	logger.Info("Shift change",
		zap.String("from", c.lastWindow.Name), zap.String("to", window.Name))

	previous := c.lastWindow
	c.lastWindow = window
	c.finalizeInBackground(previous)
}

// finalizeInBackground exports a shift without blocking the ingest loop.
// Export failure never takes down ingestion.
func (c *Coordinator) finalizeInBackground(window ShiftWindow) {
	go func() {
		if err := c.mon.Exporter.Finalize(window.Name, window.Date); err != nil {
			common.GetLoggerWith(
				common.LoggerNameMonitorCore,
				zap.String(common.LoggerFieldMonCategory, common.LoggerCategoryMonExport),
			).Error("Export failed",
				zap.String("shift", window.Name),
				zap.String("shift_date", window.Date.Format("2006-01-02")),
				zap.Error(err))
		}
	}()
}
