package bollywood

import (
	stdcontext "context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Engine manages the lifecycle of actors: it starts each one on its own
// goroutine, cancels them on request and collects their exit reasons.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex // Protects actors and the stopping/wg.Add handoff
	wg         sync.WaitGroup
	stopping   atomic.Bool // Indicates if the engine is shutting down
	ctx        stdcontext.Context
	cancel     stdcontext.CancelFunc
	logger     zerolog.Logger
}

// NewEngine creates a new actor engine. Cancelling ctx stops every actor.
func NewEngine(ctx stdcontext.Context, logger zerolog.Logger) *Engine {
	ctx, cancel := stdcontext.WithCancel(ctx)
	return &Engine{
		actors: make(map[string]*process),
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

// nextPID generates a unique process ID.
func (e *Engine) nextPID(name string) *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	if name == "" {
		name = "actor"
	}
	return &PID{ID: fmt.Sprintf("%s-%d", name, id)}
}

// Spawn creates and starts a new actor based on the provided Props.
// It returns the PID of the newly created actor, or nil if the engine is
// shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	e.mu.Lock()
	if e.stopping.Load() {
		e.mu.Unlock()
		e.logger.Warn().Msg("engine is stopping, cannot spawn new actors")
		return nil
	}
	pid := e.nextPID(props.name)
	proc := newProcess(e, pid, props)
	e.actors[pid.ID] = proc
	e.wg.Add(1)
	e.mu.Unlock()

	go proc.run()

	return pid
}

// Stop cancels the context of the actor identified by pid. The actor exits
// at its next suspension point.
func (e *Engine) Stop(pid *PID) {
	if proc, ok := e.lookup(pid); ok {
		proc.stop()
	}
}

// closedCh is handed out by Done for PIDs the engine never spawned.
var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Done returns a channel closed once the actor has exited. Unknown or nil
// PIDs get an already closed channel.
func (e *Engine) Done(pid *PID) <-chan struct{} {
	if proc, ok := e.lookup(pid); ok {
		return proc.doneCh
	}
	return closedCh
}

// Err returns the exit error of a finished actor. It returns nil while the
// actor is still running or when it exited cleanly.
func (e *Engine) Err(pid *PID) error {
	proc, ok := e.lookup(pid)
	if !ok {
		return nil
	}
	select {
	case <-proc.doneCh:
		return proc.err
	default:
		return nil
	}
}

// Running reports whether the actor is still executing.
func (e *Engine) Running(pid *PID) bool {
	proc, ok := e.lookup(pid)
	return ok && !proc.stopped.Load()
}

// Shutdown cancels all actors and waits up to timeout for them to exit.
// It returns false if some actors were still running at the deadline.
func (e *Engine) Shutdown(timeout time.Duration) bool {
	e.mu.Lock()
	if !e.stopping.CompareAndSwap(false, true) {
		e.logger.Debug().Msg("engine already shutting down")
	}
	e.mu.Unlock()
	e.cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		e.logger.Debug().Msg("engine shutdown complete")
		return true
	case <-timer.C:
		select {
		case <-done:
			return true
		default:
		}
		e.mu.RLock()
		remaining := []string{}
		for id, proc := range e.actors {
			if !proc.stopped.Load() {
				remaining = append(remaining, id)
			}
		}
		e.mu.RUnlock()
		e.logger.Warn().Strs("remaining", remaining).Msg("engine shutdown timeout")
		return false
	}
}

func (e *Engine) lookup(pid *PID) (*process, bool) {
	if pid == nil {
		return nil, false
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	return proc, ok
}

// finish is called by a process when its run loop exits.
func (e *Engine) finish() {
	e.wg.Done()
}
