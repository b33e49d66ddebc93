// File: player/player.go
package player

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lguibr/messagetask/bollywood"
	"github.com/lguibr/messagetask/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Role selects how a player enters the exchange and when it stops.
type Role int

const (
	// Responder waits for the first message and stops once it has sent and
	// received the threshold count.
	Responder Role = iota
	// Initiator sends the seed message first and then runs exactly
	// threshold round trips.
	Initiator
)

func (r Role) String() string {
	switch r {
	case Initiator:
		return "initiator"
	case Responder:
		return "responder"
	default:
		return "unknown"
	}
}

// State is the lifecycle position of a player.
type State int32

const (
	Idle State = iota
	SentInit
	Receiving
	Replying
	Terminated
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SentInit:
		return "sent-init"
	case Receiving:
		return "receiving"
	case Replying:
		return "replying"
	case Terminated:
		return "terminated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stats is a snapshot of a player's counters.
type Stats struct {
	Name     string
	Role     Role
	State    State
	Sent     int // Every successful push, seed included
	Received int
	Replies  int // Pushes composed from a received message
	Rounds   int // Completed receive/reply pairs
}

// Player alternately receives a message and replies to it until its role's
// stopping rule is met. Counters are owned by the goroutine running Play.
type Player struct {
	name       string
	role       Role
	inbox      Inbox
	outbox     Outbox
	threshold  int
	delay      time.Duration
	seed       Message
	logger     zerolog.Logger
	transcript *Transcript

	sent       int
	received   int
	replies    int
	rounds     int
	terminated bool

	state   atomic.Int32
	started atomic.Bool
}

// Option customizes a Player.
type Option func(*Player)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Player) { p.logger = logger }
}

func WithTranscript(t *Transcript) Option {
	return func(p *Player) { p.transcript = t }
}

// New creates a player reading from inbox and writing to outbox.
func New(name string, role Role, inbox Inbox, outbox Outbox, cfg utils.Config, opts ...Option) *Player {
	p := &Player{
		name:      name,
		role:      role,
		inbox:     inbox,
		outbox:    outbox,
		threshold: cfg.Threshold,
		delay:     cfg.ReplyDelay,
		seed:      Message(cfg.SeedMessage),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.tag(p.logger)
	return p
}

func (p *Player) tag(logger zerolog.Logger) zerolog.Logger {
	return logger.With().Str("player", p.name).Str("role", p.role.String()).Logger()
}

// NewProducer returns a bollywood.Producer that hands the engine this
// player, so the caller keeps access to its counters.
func (p *Player) NewProducer() bollywood.Producer {
	return func() bollywood.Actor { return p }
}

func (p *Player) Name() string { return p.name }

func (p *Player) Role() Role { return p.role }

// State may be called from any goroutine.
func (p *Player) State() State { return State(p.state.Load()) }

// Stats must only be called once Play has returned.
func (p *Player) Stats() Stats {
	return Stats{
		Name:     p.name,
		Role:     p.role,
		State:    p.State(),
		Sent:     p.sent,
		Received: p.received,
		Replies:  p.replies,
		Rounds:   p.rounds,
	}
}

// Perform implements bollywood.Actor. The player logs through the engine's
// logger for its PID.
func (p *Player) Perform(ctx bollywood.Context) error {
	p.logger = p.tag(*ctx.Logger())
	return p.Play(ctx.Context())
}

// Play runs the player to completion. Any interruption is returned wrapped
// with the player's name and iteration and leaves the player Failed.
func (p *Player) Play(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrAlreadyStarted, "player [%s]", p.name)
	}

	if p.role == Initiator {
		if err := p.sendInit(ctx); err != nil {
			return p.fail(err)
		}
	}

	for !p.terminated {
		msg, err := p.receive(ctx)
		if err != nil {
			return p.fail(err)
		}
		if err := p.reply(ctx, msg); err != nil {
			return p.fail(err)
		}
		p.rounds++
		p.checkTermination()
	}

	p.setState(Terminated)
	p.logger.Info().Int("sent", p.sent).Int("received", p.received).Msg("player finished gracefully")
	return nil
}

func (p *Player) sendInit(ctx context.Context) error {
	seq := p.transcript.Record(p.name, EventSent, p.seed)
	if err := p.outbox.Send(ctx, p.seed); err != nil {
		p.transcript.Discard(seq)
		return errors.Wrapf(err, "player [%s] failed to send message [%s]", p.name, p.seed)
	}
	p.sent++
	p.setState(SentInit)
	p.logger.Info().Str("payload", string(p.seed)).Msg("sent message")
	return nil
}

func (p *Player) receive(ctx context.Context) (Message, error) {
	p.setState(Receiving)
	msg, err := p.inbox.Receive(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "player [%s] failed to receive message on iteration [%d]", p.name, p.replies)
	}
	p.received++
	p.transcript.Record(p.name, EventReceived, msg)
	return msg, nil
}

func (p *Player) reply(ctx context.Context, received Message) error {
	p.setState(Replying)
	reply := Compose(received, p.replies)
	seq := p.transcript.Record(p.name, EventSent, reply)
	if err := p.outbox.Send(ctx, reply); err != nil {
		p.transcript.Discard(seq)
		return errors.Wrapf(err, "player [%s] failed to send message [%s] on iteration [%d]", p.name, reply, p.replies)
	}
	p.sent++
	p.replies++
	p.logger.Info().Str("payload", string(reply)).Msg("sent message")

	if err := p.pause(ctx); err != nil {
		return errors.Wrapf(err, "player [%s] interrupted after sending message [%s] on iteration [%d]", p.name, reply, p.replies)
	}
	return nil
}

// pause waits the configured reply delay.
func (p *Player) pause(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return &InterruptedError{Op: OpPause, Cause: ctx.Err()}
	}
}

// checkTermination applies the role's stopping rule after a round trip.
// Both rules end after threshold round trips; the responder expresses it
// through its message counts, the initiator through its own round counter.
func (p *Player) checkTermination() {
	switch p.role {
	case Initiator:
		p.terminated = p.rounds >= p.threshold
	default:
		p.terminated = p.sent == p.threshold && p.received == p.threshold
	}
}

func (p *Player) fail(err error) error {
	p.setState(Failed)
	p.logger.Error().Err(err).Int("sent", p.sent).Int("received", p.received).Msg("player stopped abnormally")
	return err
}

func (p *Player) setState(s State) {
	p.state.Store(int32(s))
}
