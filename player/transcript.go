package player

import "sync"

// Event tells whether a transcript entry records a send or a receive.
type Event int

const (
	EventSent Event = iota
	EventReceived
)

func (e Event) String() string {
	if e == EventReceived {
		return "received"
	}
	return "sent"
}

// Entry is one recorded channel operation.
type Entry struct {
	Seq     int
	Player  string
	Event   Event
	Message Message
}

// Transcript records every send and receive of a match. A send is recorded
// before the message is pushed, so it always precedes the matching receive.
// A nil *Transcript discards records.
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
	next    int
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Record appends an entry and returns its sequence number.
func (t *Transcript) Record(player string, event Event, msg Message) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	seq := t.next
	t.next++
	t.entries = append(t.entries, Entry{
		Seq:     seq,
		Player:  player,
		Event:   event,
		Message: msg,
	})
	return seq
}

// Discard removes the entry recorded as seq, for a send that never happened.
// Sequence numbers are not reused.
func (t *Transcript) Discard(seq int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Seq == seq {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Entries returns a copy of every entry recorded so far.
func (t *Transcript) Entries() []Entry {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Messages returns, in order, the messages a player sent or received.
func (t *Transcript) Messages(player string, event Event) []Message {
	var out []Message
	for _, e := range t.Entries() {
		if e.Player == player && e.Event == event {
			out = append(out, e.Message)
		}
	}
	return out
}

func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
