package player

import "fmt"

// Message is the opaque payload exchanged between players.
type Message string

// Compose builds a reply by appending the sender's reply count to the
// received text.
func Compose(received Message, replies int) Message {
	return Message(fmt.Sprintf("%s %d", received, replies))
}
