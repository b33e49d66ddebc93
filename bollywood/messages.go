package bollywood

import "fmt"

// Failure records an actor that exited with an error or a panic.
type Failure struct {
	Who    *PID
	Reason error
}

func (f Failure) Error() string {
	return fmt.Sprintf("actor %s failed: %v", f.Who, f.Reason)
}

func (f Failure) Unwrap() error { return f.Reason }

// PanicError wraps a value recovered from a panicking actor.
type PanicError struct {
	Value interface{}
	Stack string
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}
