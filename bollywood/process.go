package bollywood

import (
	stdcontext "context"
	"runtime/debug"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// process represents the running instance of an actor.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	props   *Props
	ctx     stdcontext.Context
	cancel  stdcontext.CancelFunc
	logger  zerolog.Logger
	doneCh  chan struct{} // Closed when the run loop has exited
	stopped atomic.Bool
	err     error // Written once before doneCh is closed
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	ctx, cancel := stdcontext.WithCancel(engine.ctx)
	return &process{
		engine: engine,
		pid:    pid,
		props:  props,
		ctx:    ctx,
		cancel: cancel,
		logger: engine.logger.With().Str("pid", pid.ID).Logger(),
		doneCh: make(chan struct{}),
	}
}

// stop cancels the actor's context. Safe to call more than once.
func (p *process) stop() {
	p.cancel()
}

// run executes the actor and records how it exited.
func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		p.cancel()
		close(p.doneCh)
		p.engine.finish()
	}()

	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			p.logger.Error().Interface("panic", r).Str("stack", stack).Msg("actor panicked")
			p.err = &PanicError{Value: r, Stack: stack}
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic("producer returned nil actor")
	}

	p.logger.Debug().Msg("actor started")
	p.err = p.actor.Perform(&context{
		self:   p.pid,
		ctx:    p.ctx,
		logger: p.logger,
	})
	if p.err != nil {
		p.logger.Error().Err(p.err).Msg("actor failed")
		return
	}
	p.logger.Debug().Msg("actor stopped")
}
