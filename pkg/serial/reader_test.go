package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.bug.st/serial"

	"lineworks.id/machine-monitor-service/pkg/common"
	_ "lineworks.id/machine-monitor-service/pkg/testing"
)

func TestSplitLines(t *testing.T) {
	common.SetTestLoggerNop()

	complete, pending := splitLines("", "101,1,250\n102,0,40\n")
	assert.Equal(t, []string{"101,1,250", "102,0,40"}, complete)
	assert.Equal(t, "", pending)

	// Trailing fragment carries over and completes with the next chunk.
	complete, pending = splitLines("", "101,1,250\n102,0,")
	assert.Equal(t, []string{"101,1,250"}, complete)
	assert.Equal(t, "102,0,", pending)

	complete, pending = splitLines(pending, "40\n")
	assert.Equal(t, []string{"102,0,40"}, complete)
	assert.Equal(t, "", pending)
}

func TestSplitLines_LineEndings(t *testing.T) {
	common.SetTestLoggerNop()

	complete, pending := splitLines("", "a\r\nb\rc\n")
	assert.Equal(t, []string{"a", "b", "c"}, complete)
	assert.Equal(t, "", pending)
}

func TestSplitLines_BlankAndPaddedLines(t *testing.T) {
	common.SetTestLoggerNop()

	complete, pending := splitLines("", "\n  101,1,250  \n\n\r\n")
	assert.Equal(t, []string{"101,1,250"}, complete)
	assert.Equal(t, "", pending)

	complete, pending = splitLines("", "no newline yet")
	assert.Empty(t, complete)
	assert.Equal(t, "no newline yet", pending)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "reconnecting", StateReconnecting.String())
	assert.Equal(t, "stopped", State(99).String())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0", 115200)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, serial.NoParity, cfg.Parity)
	assert.Equal(t, 8, cfg.DataBits)
	assert.Equal(t, serial.OneStopBit, cfg.StopBits)

	mode := cfg.mode()
	assert.Equal(t, 115200, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
}

func TestReader_StatusBeforeStart(t *testing.T) {
	common.SetTestLoggerNop()

	reader := NewReader(DefaultConfig("/dev/ttyUSB0", 115200))
	assert.Equal(t, "stopped", reader.Status())

	// Stop on a never-started reader is a no-op.
	reader.Stop()
	assert.Equal(t, "stopped", reader.Status())
}

func TestReader_StartMissingPort(t *testing.T) {
	common.SetTestLoggerNop()

	reader := NewReader(DefaultConfig("/dev/null-nonexistent-port", 115200))
	lines, err := reader.Start()
	assert.Error(t, err)
	assert.Nil(t, lines)
	assert.Equal(t, "stopped", reader.Status())
}

func TestReopen_StopMidBackoff(t *testing.T) {
	common.SetTestLoggerNop()

	// The port never opens, so reopen sits in its backoff wait; closing the
	// session's stop channel must abort it instead of letting it sleep
	// through and reopen into a stopped reader.
	reader := NewReader(DefaultConfig("/dev/null-nonexistent-port", 115200))
	stop := make(chan struct{})

	result := make(chan bool, 1)
	go func() {
		result <- reader.reopen(stop)
	}()

	time.Sleep(50 * time.Millisecond)
	close(stop)

	select {
	case recovered := <-result:
		assert.False(t, recovered)
	case <-time.After(time.Second):
		t.Fatal("reopen did not abort on stop")
	}
}

func TestStop_JoinsReadLoop(t *testing.T) {
	common.SetTestLoggerNop()

	// Stop must not return while the session's read loop is still winding
	// down, or a following Start could race it over the port and state.
	reader := NewReader(DefaultConfig("/dev/null-nonexistent-port", 115200))

	done := make(chan struct{})
	exitDelay := 100 * time.Millisecond

	reader.mu.Lock()
	reader.state = StateRunning
	reader.stop = make(chan struct{})
	reader.done = done
	reader.mu.Unlock()

	go func() {
		time.Sleep(exitDelay)
		close(done)
	}()

	began := time.Now()
	reader.Stop()
	waited := time.Since(began)

	assert.GreaterOrEqual(t, waited, exitDelay)
	assert.Equal(t, "stopped", reader.Status())

	// Second Stop is still a no-op.
	reader.Stop()
	assert.Equal(t, "stopped", reader.Status())
}
