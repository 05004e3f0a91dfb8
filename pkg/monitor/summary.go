package monitor

import (
	"sort"

	"lineworks.id/machine-monitor-service/pkg/common"
)

// LineSummary aggregates the current readings of one production line.
type LineSummary struct {
	LineProduction  string  `json:"line_production"`
	TotalMachine    int     `json:"total_machine"`
	Active          int     `json:"active"`
	Inactive        int     `json:"inactive"`
	Count           int     `json:"count"`
	Cycle           float64 `json:"cycle"`
	AvgCycle        float64 `json:"avg_cycle"`
	PartHours       int     `json:"part_hours"`
	DowntimePercent int     `json:"downtime_percent"`
	UptimePercent   int     `json:"uptime_percent"`
}

type lineSummaryRow struct {
	LineProduction  string
	Status          int
	Count           int
	CycleTime       float64
	AvgCycleTime    float64
	PartHours       int
	DowntimePercent int
	UptimePercent   int
}

// GetLineSummary joins the directory against the current readings in one
// query and groups per production line in memory.
func (m *Monitor) GetLineSummary() ([]LineSummary, error) {
	var rows []lineSummaryRow
	err := m.Db.Conn.
		Table("machines").
		Select(`machines.line_production,
			COALESCE(data_realtime.status, 0) AS status,
			COALESCE(data_realtime.count, 0) AS count,
			COALESCE(data_realtime.cycle_time, 0) AS cycle_time,
			COALESCE(data_realtime.avg_cycle_time, 0) AS avg_cycle_time,
			COALESCE(data_realtime.part_hours, 0) AS part_hours,
			COALESCE(data_realtime.downtime_percent, 0) AS downtime_percent,
			COALESCE(data_realtime.uptime_percent, 0) AS uptime_percent`).
		Joins("LEFT JOIN data_realtime ON data_realtime.id = machines.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := common.Reducer(rows, func(acc map[string][]lineSummaryRow, row lineSummaryRow) map[string][]lineSummaryRow {
		acc[row.LineProduction] = append(acc[row.LineProduction], row)
		return acc
	}, make(map[string][]lineSummaryRow))

	summaries := make([]LineSummary, 0, len(grouped))
	for line, members := range grouped {
		summary := common.Reducer(members, func(acc LineSummary, row lineSummaryRow) LineSummary {
			if row.Status == 1 {
				acc.Active++
			} else {
				acc.Inactive++
			}
			acc.Count += row.Count
			acc.Cycle += row.CycleTime
			acc.AvgCycle += row.AvgCycleTime
			acc.PartHours += row.PartHours
			acc.DowntimePercent += row.DowntimePercent
			acc.UptimePercent += row.UptimePercent
			return acc
		}, LineSummary{LineProduction: line})
		summary.TotalMachine = summary.Active + summary.Inactive
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LineProduction < summaries[j].LineProduction
	})
	return summaries, nil
}
