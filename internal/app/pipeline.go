package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/surface"
)

// ErrPipelineStopped is returned by Submit once the pipeline has stopped.
var ErrPipelineStopped = errors.New("pipeline stopped")

// Pipeline owns a surface and applies submitted pointer events to it on a
// single goroutine, strictly in submission order. Gesture listeners of the
// surface run on that goroutine too.
type Pipeline struct {
	surface *surface.Surface
	events  chan pointer.Event
	logger  *zap.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	done      chan struct{}
}

// NewPipeline returns a stopped pipeline for s.
func NewPipeline(s *surface.Surface, queueSize int, logger *zap.Logger) *Pipeline {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		surface: s,
		events:  make(chan pointer.Event, queueSize),
		logger:  logger.Named("pipeline"),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Surface returns the surface the pipeline feeds.
func (p *Pipeline) Surface() *surface.Surface {
	return p.surface
}

// Start runs the pipeline until ctx is cancelled or Stop is called.
// Calling Start more than once has no effect.
func (p *Pipeline) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		go p.run(ctx)
	})
}

func (p *Pipeline) run(ctx context.Context) {
	defer close(p.done)
	p.logger.Debug("pipeline started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("pipeline cancelled", zap.Error(ctx.Err()))
			return
		case <-p.stopCh:
			// Events queued before Stop are still applied.
			for {
				select {
				case e := <-p.events:
					p.surface.Handle(e)
				default:
					p.logger.Debug("pipeline stopped")
					return
				}
			}
		case e := <-p.events:
			p.surface.Handle(e)
		}
	}
}

// Submit queues e. It blocks while the queue is full.
func (p *Pipeline) Submit(ctx context.Context, e pointer.Event) error {
	select {
	case <-p.stopCh:
		return ErrPipelineStopped
	case <-p.done:
		return ErrPipelineStopped
	default:
	}

	select {
	case p.events <- e:
		return nil
	case <-p.stopCh:
		return ErrPipelineStopped
	case <-p.done:
		return ErrPipelineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop signals the pipeline to finish the queued events and waits for it
// if it was started.
func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})

	started := true
	p.startOnce.Do(func() {
		started = false
		close(p.done)
	})
	if started {
		<-p.done
	}
}

// Done is closed once the pipeline goroutine has exited.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}
