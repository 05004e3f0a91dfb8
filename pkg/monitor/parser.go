package monitor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// FrameFieldCount is the wire contract: one device code plus nine counters.
const FrameFieldCount = 10

// FloatTolerance bounds the difference under which two float fields are
// considered equal during duplicate suppression.
const FloatTolerance = 0.001

// ParsedReading is the typed form of one telemetry frame.
type ParsedReading struct {
	MachineCode     int
	Status          int
	Count           int
	CycleTime       float64
	AvgCycleTime    float64
	PartHours       int
	DowntimeSeconds float64
	UptimeSeconds   float64
	DowntimePercent int
	UptimePercent   int
}

// allZero reports whether every field except the machine code is zero.
func (r *ParsedReading) allZero() bool {
	return r.Status == 0 &&
		r.Count == 0 &&
		r.CycleTime == 0 &&
		r.AvgCycleTime == 0 &&
		r.PartHours == 0 &&
		r.DowntimeSeconds == 0 &&
		r.UptimeSeconds == 0 &&
		r.DowntimePercent == 0 &&
		r.UptimePercent == 0
}

func (r *ParsedReading) equals(other *ParsedReading) bool {
	return r.MachineCode == other.MachineCode &&
		r.Status == other.Status &&
		r.Count == other.Count &&
		math.Abs(r.CycleTime-other.CycleTime) < FloatTolerance &&
		math.Abs(r.AvgCycleTime-other.AvgCycleTime) < FloatTolerance &&
		r.PartHours == other.PartHours &&
		math.Abs(r.DowntimeSeconds-other.DowntimeSeconds) < FloatTolerance &&
		math.Abs(r.UptimeSeconds-other.UptimeSeconds) < FloatTolerance &&
		r.DowntimePercent == other.DowntimePercent &&
		r.UptimePercent == other.UptimePercent
}

// ParseOutcome classifies an accepted frame. Only OutcomeNew proceeds to
// persistence; the other two are filtered, not failed.
type ParseOutcome int

const (
	OutcomeNew ParseOutcome = iota
	OutcomeDuplicate
	OutcomeAllZero
)

func (o ParseOutcome) String() string {
	switch o {
	case OutcomeNew:
		return "new"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeAllZero:
		return "all_zero"
	}
	return "unknown"
}

type FieldCountError struct {
	Got int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("frame has %d fields, want %d", e.Got, FrameFieldCount)
}

type NumericFormatError struct {
	Index int
	Token string
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("field %d is not numeric: %q", e.Index, e.Token)
}

// DedupCache keeps the last accepted reading per machine code. It is safe
// for concurrent use; frames for different machines may be parsed
// interleaved.
type DedupCache struct {
	mu   sync.Mutex
	last map[int]ParsedReading
}

func NewDedupCache() *DedupCache {
	return &DedupCache{last: make(map[int]ParsedReading)}
}

// checkAndStore compares the reading against the last one seen for its
// machine code. A duplicate leaves the cache untouched.
func (c *DedupCache) checkAndStore(reading *ParsedReading) ParseOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.last[reading.MachineCode]; ok && prev.equals(reading) {
		return OutcomeDuplicate
	}
	c.last[reading.MachineCode] = *reading
	return OutcomeNew
}

func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

// Parser turns raw frames into readings. Its only state is the dedup cache
// handed to it at construction.
type Parser struct {
	cache *DedupCache
}

func NewParser(cache *DedupCache) *Parser {
	return &Parser{cache: cache}
}

// Parse validates one comma-separated frame. The returned outcome is only
// meaningful when err is nil.
func (p *Parser) Parse(line string) (ParsedReading, ParseOutcome, error) {
	var reading ParsedReading

	tokens := strings.Split(line, ",")
	if len(tokens) < FrameFieldCount {
		return reading, 0, &FieldCountError{Got: len(tokens)}
	}

	values := make([]float64, FrameFieldCount)
	for i := 0; i < FrameFieldCount; i++ {
		token := strings.TrimSpace(tokens[i])
		// strconv.ParseFloat is locale-invariant: period separator only.
		val, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return reading, 0, &NumericFormatError{Index: i, Token: token}
		}
		values[i] = val
	}

	// Integer fields arrive as floats on the wire ("10.00") and truncate.
	reading = ParsedReading{
		MachineCode:     int(values[0]),
		Status:          int(values[1]),
		Count:           int(values[2]),
		CycleTime:       values[3],
		AvgCycleTime:    values[4],
		PartHours:       int(values[5]),
		DowntimeSeconds: values[6],
		UptimeSeconds:   values[7],
		DowntimePercent: int(values[8]),
		UptimePercent:   int(values[9]),
	}

	if reading.allZero() {
		return reading, OutcomeAllZero, nil
	}

	return reading, p.cache.checkAndStore(&reading), nil
}
