package player

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_ResponderRepliesUntilThreshold(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	p := New("responder", Responder, in, out, testConfig(3))
	assert.Equal(t, Idle, p.State())

	errCh := runAsync(context.Background(), p)
	for i := 0; i < 3; i++ {
		msg := Message(fmt.Sprintf("m%d", i))
		mustSend(t, in, msg)
		assert.Equal(t, Compose(msg, i), mustReceive(t, out))
	}

	require.NoError(t, awaitErr(t, errCh))
	stats := p.Stats()
	assert.Equal(t, Terminated, stats.State)
	assert.Equal(t, 3, stats.Sent)
	assert.Equal(t, 3, stats.Received)
	assert.Equal(t, 3, stats.Rounds)
}

func TestPlayer_InitiatorSeedsThenRunsFixedRounds(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	p := New("initiator", Initiator, in, out, testConfig(2))

	errCh := runAsync(context.Background(), p)
	assert.Equal(t, Message("initiator player"), mustReceive(t, out))

	mustSend(t, in, "r0")
	assert.Equal(t, Message("r0 0"), mustReceive(t, out))
	mustSend(t, in, "r1")
	assert.Equal(t, Message("r1 1"), mustReceive(t, out))

	require.NoError(t, awaitErr(t, errCh))
	stats := p.Stats()
	assert.Equal(t, Terminated, stats.State)
	assert.Equal(t, 3, stats.Sent, "seed plus one reply per round")
	assert.Equal(t, 2, stats.Received)
	assert.Equal(t, 2, stats.Replies)
	assert.Equal(t, 2, stats.Rounds)
}

func TestPlayer_PlayTwice(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	p := New("responder", Responder, in, out, testConfig(1))

	errCh := runAsync(context.Background(), p)
	mustSend(t, in, "hello")
	mustReceive(t, out)
	require.NoError(t, awaitErr(t, errCh))

	err := p.Play(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestPlayer_ReceiveInterruptedIsFatal(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	p := New("responder", Responder, in, out, testConfig(3))
	ctx, cancel := context.WithCancel(context.Background())

	errCh := runAsync(ctx, p)
	require.Eventually(t, func() bool { return p.State() == Receiving }, time.Second, time.Millisecond)
	cancel()

	err := awaitErr(t, errCh)
	require.Error(t, err)
	assert.True(t, IsInterrupted(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "player [responder] failed to receive message on iteration [0]")
	assert.Equal(t, Failed, p.State())
}

func TestPlayer_PauseInterruptedIsFatal(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	cfg := testConfig(3)
	cfg.ReplyDelay = time.Hour
	p := New("responder", Responder, in, out, cfg)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := runAsync(ctx, p)
	mustSend(t, in, "m0")
	assert.Equal(t, Message("m0 0"), mustReceive(t, out))
	cancel()

	err := awaitErr(t, errCh)
	var ie *InterruptedError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, OpPause, ie.Op)
	assert.Equal(t, 1, p.Stats().Sent, "the reply was delivered before the pause")
}

func TestPlayer_SendOnClosedChannelIsFatal(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	out.Close()
	p := New("initiator", Initiator, in, out, testConfig(1))

	err := p.Play(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChannelClosed)
	assert.Contains(t, err.Error(), "failed to send message [initiator player]")
	assert.Equal(t, Failed, p.State())
	assert.Zero(t, p.Stats().Sent)
}

func TestPlayer_FailedSendLeavesNoTranscriptEntry(t *testing.T) {
	in, out := NewChannel("in"), NewChannel("out")
	out.Close()
	transcript := NewTranscript()
	p := New("initiator", Initiator, in, out, testConfig(1), WithTranscript(transcript))

	require.Error(t, p.Play(context.Background()))
	assert.Zero(t, transcript.Len())
}

func TestPlayer_LogsEverySend(t *testing.T) {
	var buf bytes.Buffer
	in, out := NewChannel("in"), NewChannel("out")
	p := New("initiator", Initiator, in, out, testConfig(2), WithLogger(zerolog.New(&buf)))

	errCh := runAsync(context.Background(), p)
	mustReceive(t, out)
	for i := 0; i < 2; i++ {
		mustSend(t, in, "r")
		mustReceive(t, out)
	}
	require.NoError(t, awaitErr(t, errCh))

	logs := buf.String()
	assert.Equal(t, 3, strings.Count(logs, `"message":"sent message"`))
	assert.Contains(t, logs, `"player":"initiator"`)
	assert.Contains(t, logs, `"role":"initiator"`)
	assert.Contains(t, logs, "player finished gracefully")
}

func TestRoleAndStateStrings(t *testing.T) {
	assert.Equal(t, "initiator", Initiator.String())
	assert.Equal(t, "responder", Responder.String())
	assert.Equal(t, "unknown", Role(9).String())
	assert.Equal(t, "sent-init", SentInit.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", State(42).String())
}
