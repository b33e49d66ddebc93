package player

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lguibr/messagetask/utils"
	"github.com/stretchr/testify/require"
)

// testConfig returns the default exchange with no reply delay.
func testConfig(threshold int) utils.Config {
	cfg := utils.DefaultConfig()
	cfg.Threshold = threshold
	cfg.ReplyDelay = 0
	cfg.ShutdownTimeout = time.Second
	return cfg
}

// runAsync starts p.Play and returns a channel delivering its result.
func runAsync(ctx context.Context, p *Player) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- p.Play(ctx) }()
	return errCh
}

func awaitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("player did not return in time")
		return nil
	}
}

func mustReceive(t *testing.T, ch *Channel) Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := ch.Receive(ctx)
	require.NoError(t, err)
	return msg
}

func mustSend(t *testing.T, ch *Channel, msg Message) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, ch.Send(ctx, msg))
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
