package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/lguibr/messagetask/bollywood"
	"github.com/lguibr/messagetask/player"
	"github.com/stretchr/testify/assert"
)

func TestSummary_GracefulMatch(t *testing.T) {
	out := Summary(player.Result{
		Initiator:   player.Stats{Name: "initiator", Role: player.Initiator, State: player.Terminated, Sent: 11, Received: 10},
		Responder:   player.Stats{Name: "responder", Role: player.Responder, State: player.Terminated, Sent: 10, Received: 10},
		Undelivered: []player.Message{"last"},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"Player [initiator] finished gracefully: sent 11, received 10.",
		"Player [responder] finished gracefully: sent 10, received 10.",
		"Undelivered message [last].",
	}, lines)
}

func TestSummary_Failure(t *testing.T) {
	out := Summary(player.Result{
		Initiator: player.Stats{Role: player.Initiator, State: player.Receiving, Sent: 3, Received: 2},
		Responder: player.Stats{Name: "responder", State: player.Failed, Sent: 2, Received: 2},
		Failures: []bollywood.Failure{
			{Who: &bollywood.PID{ID: "responder-1"}, Reason: errors.New("receive interrupted")},
		},
	})

	assert.Contains(t, out, "Player [initiator] is receiving: sent 3, received 2.")
	assert.Contains(t, out, "Player [responder] stopped abnormally")
	assert.Contains(t, out, "Failure: actor responder-1 failed: receive interrupted")
}

func TestTranscript(t *testing.T) {
	out := Transcript([]player.Entry{
		{Seq: 0, Player: "initiator", Event: player.EventSent, Message: "initiator player"},
		{Seq: 1, Player: "responder", Event: player.EventReceived, Message: "initiator player"},
	})
	assert.Equal(t, "  0 initiator  sent     [initiator player]\n  1 responder  received [initiator player]\n", out)
}
