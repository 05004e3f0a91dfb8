package monitor

import "time"

const (
	ShiftName1 = "shift_1"
	ShiftName2 = "shift_2"
	ShiftName3 = "shift_3"
)

// Shift boundaries in seconds since midnight: 06:30, 14:30, 22:30.
const (
	shift1Start = 6*3600 + 30*60
	shift2Start = 14*3600 + 30*60
	shift3Start = 22*3600 + 30*60
)

// ShiftWindow identifies one shift instance. Date is midnight of the
// calendar day the shift belongs to, which for the early-morning tail of
// the overnight shift is the previous day.
type ShiftWindow struct {
	Name string
	Date time.Time
}

func (w ShiftWindow) Equal(other ShiftWindow) bool {
	return w.Name == other.Name && w.Date.Equal(other.Date)
}

// CurrentWindow derives the active shift from a wall-clock timestamp. Pure
// and cheap; it runs on every ingestion tick.
func CurrentWindow(now time.Time) ShiftWindow {
	secs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case secs >= shift1Start && secs < shift2Start:
		return ShiftWindow{Name: ShiftName1, Date: date}
	case secs >= shift2Start && secs < shift3Start:
		return ShiftWindow{Name: ShiftName2, Date: date}
	case secs < shift1Start:
		// Overnight shift started yesterday.
		return ShiftWindow{Name: ShiftName3, Date: date.AddDate(0, 0, -1)}
	default:
		return ShiftWindow{Name: ShiftName3, Date: date}
	}
}
