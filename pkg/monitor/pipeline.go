package monitor

import (
	"context"
	"errors"
	"sync"
)

// LineSource is the device side of the pipeline: something that can be
// started into a stream of raw text frames. The serial reader implements
// it; tests substitute a channel-backed fake.
type LineSource interface {
	Start() (<-chan string, error)
	Stop()
	Status() string
}

var (
	ErrAlreadyRunning = errors.New("pipeline already running")
	ErrNotRunning     = errors.New("pipeline not running")
)

// Pipeline owns the lifecycle of one source + coordinator pair. The dedup
// cache lives here so it survives start/stop cycles within the process.
type Pipeline struct {
	mon    *Monitor
	source LineSource
	cache  *DedupCache

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewPipeline(mon *Monitor, source LineSource) *Pipeline {
	return &Pipeline{
		mon:    mon,
		source: source,
		cache:  NewDedupCache(),
	}
}

// Start opens the source and runs a coordinator over its frames. A failure
// to open on first start surfaces to the caller; everything after that is
// recovered internally.
func (p *Pipeline) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}

	lines, err := p.source.Start()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	coordinator := NewCoordinator(p.mon, p.cache)

	go func() {
		defer close(done)
		coordinator.Run(ctx, lines)
	}()

	p.cancel = cancel
	p.done = done
	p.running = true
	return nil
}

// Stop halts the source and waits for the coordinator loop to exit, which
// schedules the final export for the shift active at stop time. Idempotent.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.source.Stop()
	p.cancel()
	<-p.done

	p.running = false
	p.cancel = nil
	p.done = nil
}

func (p *Pipeline) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return "stopped"
	}
	return p.source.Status()
}
