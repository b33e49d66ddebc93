package render

import (
	"fmt"
	"strings"

	"github.com/lguibr/messagetask/player"
)

// Summary renders the per-player completion notices and any messages left
// in the channels when the match ended.
func Summary(result player.Result) string {
	var b strings.Builder
	for _, stats := range []player.Stats{result.Initiator, result.Responder} {
		b.WriteString(statsLine(stats))
		b.WriteString("\n")
	}
	for _, msg := range result.Undelivered {
		fmt.Fprintf(&b, "Undelivered message [%s].\n", msg)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(&b, "Failure: %v\n", f)
	}
	return b.String()
}

func statsLine(s player.Stats) string {
	name := s.Name
	if name == "" {
		name = s.Role.String()
	}
	switch s.State {
	case player.Terminated:
		return fmt.Sprintf("Player [%s] finished gracefully: sent %d, received %d.", name, s.Sent, s.Received)
	case player.Failed:
		return fmt.Sprintf("Player [%s] stopped abnormally: sent %d, received %d.", name, s.Sent, s.Received)
	default:
		return fmt.Sprintf("Player [%s] is %s: sent %d, received %d.", name, s.State, s.Sent, s.Received)
	}
}

// Transcript renders one line per recorded channel operation.
func Transcript(entries []player.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%3d %-10s %-8s [%s]\n", e.Seq, e.Player, e.Event, e.Message)
	}
	return b.String()
}
