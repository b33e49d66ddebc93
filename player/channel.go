package player

import (
	"context"
	"sync"

	"github.com/lguibr/messagetask/utils"
)

// Inbox is the receive-only side of a Channel.
type Inbox interface {
	Receive(ctx context.Context) (Message, error)
}

// Outbox is the send-only side of a Channel.
type Outbox interface {
	Send(ctx context.Context, msg Message) error
}

// Channel is a one-directional, FIFO link between two players holding at
// most utils.ChannelCapacity undelivered messages.
type Channel struct {
	id        string
	buf       chan Message
	closed    chan struct{}
	closeOnce sync.Once
}

func NewChannel(id string) *Channel {
	return &Channel{
		id:     id,
		buf:    make(chan Message, utils.ChannelCapacity),
		closed: make(chan struct{}),
	}
}

func (c *Channel) ID() string { return c.id }

// Send blocks until msg is buffered, the channel closes or ctx is done.
func (c *Channel) Send(ctx context.Context, msg Message) error {
	if err := c.check(ctx, OpSend); err != nil {
		return err
	}
	select {
	case c.buf <- msg:
		return nil
	case <-c.closed:
		return c.interrupted(OpSend, ErrChannelClosed)
	case <-ctx.Done():
		return c.interrupted(OpSend, ctx.Err())
	}
}

// Receive blocks until a message is available, the channel closes or ctx
// is done.
func (c *Channel) Receive(ctx context.Context) (Message, error) {
	if err := c.check(ctx, OpReceive); err != nil {
		return "", err
	}
	select {
	case msg := <-c.buf:
		return msg, nil
	case <-c.closed:
		return "", c.interrupted(OpReceive, ErrChannelClosed)
	case <-ctx.Done():
		return "", c.interrupted(OpReceive, ctx.Err())
	}
}

// Len returns the number of undelivered messages.
func (c *Channel) Len() int { return len(c.buf) }

func (c *Channel) Cap() int { return cap(c.buf) }

// Close wakes every blocked caller with ErrChannelClosed. Buffered messages
// stay available to Drain.
func (c *Channel) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Drain removes and returns the undelivered messages without blocking.
func (c *Channel) Drain() []Message {
	var out []Message
	for {
		select {
		case msg := <-c.buf:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func (c *Channel) check(ctx context.Context, op Op) error {
	select {
	case <-c.closed:
		return c.interrupted(op, ErrChannelClosed)
	default:
	}
	if err := ctx.Err(); err != nil {
		return c.interrupted(op, err)
	}
	return nil
}

func (c *Channel) interrupted(op Op, cause error) error {
	return &InterruptedError{Op: op, Channel: c.id, Cause: cause}
}
