package bollywood

import (
	stdcontext "context"

	"github.com/rs/zerolog"
)

// Context provides information and capabilities to an Actor while it runs.
type Context interface {
	// Self returns the PID of the running actor.
	Self() *PID
	// Context is cancelled when the actor is stopped or the engine shuts down.
	Context() stdcontext.Context
	// Logger returns a logger tagged with the actor's PID.
	Logger() *zerolog.Logger
}

// context implements the Context interface.
type context struct {
	self   *PID
	ctx    stdcontext.Context
	logger zerolog.Logger
}

func (c *context) Self() *PID                  { return c.self }
func (c *context) Context() stdcontext.Context { return c.ctx }
func (c *context) Logger() *zerolog.Logger     { return &c.logger }
