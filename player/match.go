package player

import (
	"context"

	"github.com/lguibr/messagetask/bollywood"
	"github.com/lguibr/messagetask/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Result summarizes a finished match.
type Result struct {
	Initiator   Stats
	Responder   Stats
	Undelivered []Message // Messages still buffered when both players stopped
	Transcript  []Entry
	Failures    []bollywood.Failure
}

// Err returns the first recorded failure, or nil.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures[0]
}

// Match wires an initiator and a responder together with one channel per
// direction and runs them on a bollywood engine.
type Match struct {
	engine     *bollywood.Engine
	logger     zerolog.Logger
	forward    *Channel // initiator -> responder
	backward   *Channel // responder -> initiator
	initiator  *Player
	responder  *Player
	transcript *Transcript

	initiatorPID *bollywood.PID
	responderPID *bollywood.PID
}

// NewMatch validates cfg and builds both players and channels. Nothing runs
// until Start.
func NewMatch(engine *bollywood.Engine, cfg utils.Config, logger zerolog.Logger) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "new match")
	}

	m := &Match{
		engine:     engine,
		logger:     logger,
		forward:    NewChannel(cfg.InitiatorName + "->" + cfg.ResponderName),
		backward:   NewChannel(cfg.ResponderName + "->" + cfg.InitiatorName),
		transcript: NewTranscript(),
	}
	m.initiator = New(cfg.InitiatorName, Initiator, m.backward, m.forward, cfg, WithTranscript(m.transcript))
	m.responder = New(cfg.ResponderName, Responder, m.forward, m.backward, cfg, WithTranscript(m.transcript))
	return m, nil
}

// Start spawns the responder, then the initiator.
func (m *Match) Start() error {
	if m.initiatorPID != nil || m.responderPID != nil {
		return errors.New("match already started")
	}
	m.responderPID = m.engine.Spawn(bollywood.NewProps(m.responder.NewProducer()).WithName(m.responder.Name()))
	if m.responderPID == nil {
		return errors.New("engine refused to spawn responder")
	}
	m.initiatorPID = m.engine.Spawn(bollywood.NewProps(m.initiator.NewProducer()).WithName(m.initiator.Name()))
	if m.initiatorPID == nil {
		m.engine.Stop(m.responderPID)
		return errors.New("engine refused to spawn initiator")
	}
	return nil
}

// ErrNotStarted is returned by Wait when Start has not spawned both players.
var ErrNotStarted = errors.New("match not started")

// Wait blocks until both players have exited, then closes both channels and
// collects whatever is still buffered. If one player fails, its peer keeps
// waiting on the channel until its own context is cancelled.
func (m *Match) Wait() (Result, error) {
	if m.responderPID == nil || m.initiatorPID == nil {
		return Result{}, ErrNotStarted
	}
	<-m.engine.Done(m.responderPID)
	<-m.engine.Done(m.initiatorPID)

	m.forward.Close()
	m.backward.Close()
	undelivered := append(m.forward.Drain(), m.backward.Drain()...)
	if len(undelivered) > 0 {
		m.logger.Debug().Int("count", len(undelivered)).Msg("messages left undelivered")
	}

	result := Result{
		Initiator:   m.initiator.Stats(),
		Responder:   m.responder.Stats(),
		Undelivered: undelivered,
		Transcript:  m.transcript.Entries(),
	}
	for _, pid := range []*bollywood.PID{m.responderPID, m.initiatorPID} {
		if err := m.engine.Err(pid); err != nil {
			result.Failures = append(result.Failures, bollywood.Failure{Who: pid, Reason: err})
		}
	}
	return result, nil
}

func (m *Match) InitiatorPID() *bollywood.PID { return m.initiatorPID }

func (m *Match) ResponderPID() *bollywood.PID { return m.responderPID }

func (m *Match) Initiator() *Player { return m.initiator }

func (m *Match) Responder() *Player { return m.responder }

// Channels returns the initiator->responder and responder->initiator links.
func (m *Match) Channels() (forward, backward *Channel) { return m.forward, m.backward }

// Play runs a full match on a fresh engine bound to ctx.
func Play(ctx context.Context, cfg utils.Config, logger zerolog.Logger) (Result, error) {
	engine := bollywood.NewEngine(ctx, logger)
	defer engine.Shutdown(cfg.ShutdownTimeout)

	m, err := NewMatch(engine, cfg, logger)
	if err != nil {
		return Result{}, err
	}
	if err := m.Start(); err != nil {
		return Result{}, err
	}
	result, err := m.Wait()
	if err != nil {
		return result, err
	}
	return result, result.Err()
}
