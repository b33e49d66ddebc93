package bollywood

// Actor is the interface that defines actor behavior.
// An actor owns its loop: Perform runs until the actor finishes or its
// context is cancelled, and the returned error is the actor's exit reason.
type Actor interface {
	Perform(ctx Context) error
}

// ActorFunc adapts a plain function to the Actor interface.
type ActorFunc func(ctx Context) error

// Perform calls f(ctx).
func (f ActorFunc) Perform(ctx Context) error { return f(ctx) }
