package player

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrChannelClosed is the cause reported when a channel is closed while a
// player waits on it.
var ErrChannelClosed = errors.New("channel closed")

// ErrAlreadyStarted is returned when Play is called twice on the same player.
var ErrAlreadyStarted = errors.New("player already started")

// Op names the blocking operation that was interrupted.
type Op string

const (
	OpSend    Op = "send"
	OpReceive Op = "receive"
	OpPause   Op = "pause"
)

// InterruptedError reports a blocking wait that ended without completing,
// either because its context was cancelled or because the channel closed.
// It is always fatal to the player that hit it.
type InterruptedError struct {
	Op      Op
	Channel string
	Cause   error
}

func (e *InterruptedError) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("%s interrupted: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s on %s interrupted: %v", e.Op, e.Channel, e.Cause)
}

func (e *InterruptedError) Unwrap() error { return e.Cause }

// IsInterrupted reports whether err, or any error it wraps, is an
// InterruptedError.
func IsInterrupted(err error) bool {
	var ie *InterruptedError
	return errors.As(err, &ie)
}
