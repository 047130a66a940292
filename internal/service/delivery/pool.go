package delivery

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPoolFull is returned when every worker is busy and the queue is full.
	ErrPoolFull = errors.New("worker pool queue full")
	// ErrPoolClosed is returned after Shutdown has been called.
	ErrPoolClosed = errors.New("worker pool closed")
)

// Task is a unit of background work. ctx is cancelled only when a Shutdown
// deadline expires.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed set of workers fed by a bounded queue.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan Task

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	done   chan struct{}
	logger *zap.Logger
}

// NewPool starts workers goroutines sharing a queue of queueSize tasks.
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		logger: logger,
	}

	for i := range workers {
		p.group.Go(func() error {
			for task := range p.tasks {
				p.run(i, task)
			}
			return nil
		})
	}

	go func() {
		_ = p.group.Wait()
		close(p.done)
	}()

	return p
}

// Submit queues task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting tasks and waits for queued and running ones. If
// ctx ends first, running tasks are cancelled and ctx.Err() is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		return ctx.Err()
	}
}

func (p *Pool) run(worker int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("background task panicked",
				zap.Int("worker", worker),
				zap.Any("panic", r))
		}
	}()
	task(p.ctx)
}
