// Package serial owns the physical device connection. It line-buffers
// inbound bytes, emits complete frames on a channel, and reconnects on its
// own when the link goes silent or errors out.
package serial

import (
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"go.bug.st/serial"
	"go.uber.org/zap"
	"lineworks.id/machine-monitor-service/pkg/common"
)

const (
	// watchdogInterval is how often silence is evaluated.
	watchdogInterval = 2 * time.Second
	// silenceThreshold forces a reconnect when no complete line arrived
	// for this long while not intentionally stopped.
	silenceThreshold = 10 * time.Second

	lineChannelDepth = 256
)

type State int

const (
	StateStopped State = iota
	StateRunning
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateReconnecting:
		return "reconnecting"
	}
	return "stopped"
}

type Config struct {
	Port     string
	Baud     int
	Parity   serial.Parity
	DataBits int
	StopBits serial.StopBits
}

// DefaultConfig is 8N1, the device's fixed framing.
func DefaultConfig(port string, baud int) Config {
	return Config{
		Port:     port,
		Baud:     baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
}

func (c Config) mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.Baud,
		Parity:   c.Parity,
		DataBits: c.DataBits,
		StopBits: c.StopBits,
	}
}

// Reader implements monitor.LineSource over a real serial port.
type Reader struct {
	cfg    Config
	logger *zap.Logger

	mu          sync.Mutex
	port        serial.Port
	state       State
	intentional bool
	lastSeen    time.Time
	lines       chan string
	stop        chan struct{}
	done        chan struct{}
}

func NewReader(cfg Config) *Reader {
	return &Reader{
		cfg:    cfg,
		logger: common.GetLoggerWith(common.LoggerNameSerialReader),
		state:  StateStopped,
	}
}

// Start opens the port and launches the read and watchdog goroutines. An
// open failure here is the one error that surfaces to the caller; once
// running, the reader recovers on its own.
func (r *Reader) Start() (<-chan string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateStopped {
		return r.lines, nil
	}

	r.logger.Info("Opening serial port",
		zap.String("port", r.cfg.Port), zap.Int("baud", r.cfg.Baud))

	port, err := serial.Open(r.cfg.Port, r.cfg.mode())
	if err != nil {
		return nil, err
	}
	port.ResetInputBuffer()

	r.port = port
	r.state = StateRunning
	r.intentional = false
	r.lastSeen = time.Now()
	r.lines = make(chan string, lineChannelDepth)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func(stop chan struct{}, done chan struct{}) {
		defer close(done)
		r.readLoop(stop)
	}(r.stop, r.done)
	go r.watchdogLoop(r.stop)

	return r.lines, nil
}

// Stop is idempotent. It marks the halt intentional before closing the
// port, so neither the watchdog nor the read loop tries to recover, then
// waits for the read loop to exit. After Stop returns no goroutine from
// this session touches the reader, so a following Start gets clean state.
func (r *Reader) Stop() {
	r.mu.Lock()

	if r.state == StateStopped {
		r.mu.Unlock()
		return
	}

	r.logger.Info("Stopping serial reader", zap.String("port", r.cfg.Port))

	r.intentional = true
	close(r.stop)
	if r.port != nil {
		r.port.Close()
	}
	r.state = StateStopped
	done := r.done
	r.mu.Unlock()

	// Join outside the lock: the read loop takes it on its way out.
	<-done
}

func (r *Reader) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.String()
}

func (r *Reader) currentPort() serial.Port {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.port
}

func (r *Reader) isIntentional() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.intentional
}

func (r *Reader) touch() {
	r.mu.Lock()
	r.lastSeen = time.Now()
	r.mu.Unlock()
}

func (r *Reader) sinceLastLine() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Since(r.lastSeen)
}

// readLoop pulls byte chunks off the port, splits them into lines and
// emits complete ones, keeping the trailing fragment for the next chunk.
// Read errors hand control to reopen; an intentional stop ends the loop
// and closes the line channel.
func (r *Reader) readLoop(stop <-chan struct{}) {
	defer close(r.lines)

	buf := make([]byte, 4096)
	pending := ""

	for {
		port := r.currentPort()
		n, err := port.Read(buf)

		if r.isIntentional() {
			return
		}

		if err != nil {
			r.logger.Warn("Serial read error", zap.Error(err))
			if !r.reopen(stop) {
				return
			}
			// Any partial frame predates the reconnect; drop it.
			pending = ""
			continue
		}
		if n == 0 {
			continue
		}

		var complete []string
		complete, pending = splitLines(pending, string(buf[:n]))

		for _, line := range complete {
			r.touch()
			select {
			case r.lines <- line:
			default:
				r.logger.Warn("Line channel full, frame dropped")
			}
		}
	}
}

// splitLines normalizes CR/CRLF line endings in a byte chunk and splits it
// into complete lines, carrying the trailing incomplete fragment forward.
// Blank lines are discarded.
func splitLines(pending, chunk string) ([]string, string) {
	text := strings.ReplaceAll(chunk, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(pending+text, "\n")

	var complete []string
	for _, line := range parts[:len(parts)-1] {
		line = strings.TrimSpace(line)
		if line != "" {
			complete = append(complete, line)
		}
	}
	return complete, parts[len(parts)-1]
}

// reopen retries the last-used parameters until the port comes back, with
// capped exponential backoff between attempts. Returns false only when the
// session stops, including mid-backoff.
func (r *Reader) reopen(stop <-chan struct{}) bool {
	r.mu.Lock()
	if r.intentional {
		r.mu.Unlock()
		return false
	}
	r.state = StateReconnecting
	if r.port != nil {
		r.port.Close()
	}
	r.mu.Unlock()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = watchdogInterval
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 0 // retry forever

	for {
		if r.isIntentional() {
			return false
		}

		port, err := serial.Open(r.cfg.Port, r.cfg.mode())
		if err == nil {
			port.ResetInputBuffer()
			r.mu.Lock()
			if r.intentional {
				r.mu.Unlock()
				port.Close()
				return false
			}
			r.port = port
			r.state = StateRunning
			r.lastSeen = time.Now()
			r.mu.Unlock()
			r.logger.Info("Serial port reconnected", zap.String("port", r.cfg.Port))
			return true
		}

		wait := policy.NextBackOff()
		r.logger.Warn("Reconnect attempt failed",
			zap.String("port", r.cfg.Port),
			zap.Duration("retry_in", wait),
			zap.Error(err))

		select {
		case <-stop:
			return false
		case <-time.After(wait):
		}
	}
}

// watchdogLoop force-closes the port when the line has gone silent; the
// read loop's pending Read then errors out and reopens with the same
// parameters.
func (r *Reader) watchdogLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(watchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			silent := r.state == StateRunning &&
				!r.intentional &&
				time.Since(r.lastSeen) > silenceThreshold
			port := r.port
			r.mu.Unlock()

			if silent && port != nil {
				r.logger.Warn("No data within silence threshold, forcing reconnect",
					zap.Duration("threshold", silenceThreshold))
				port.Close()
			}
		}
	}
}
