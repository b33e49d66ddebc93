package utils

import "time"

const (
	// ChannelCapacity bounds every link between two players. A sender blocks
	// until the receiver has drained the previous message.
	ChannelCapacity = 1

	MessageThreshold = 10 // Round trips each player completes
	ReplyDelay       = 1 * time.Second

	SeedMessage   = "initiator player"
	InitiatorName = "initiator"
	ResponderName = "responder"

	ShutdownTimeout = 5 * time.Second

	EnvConfigPath = "MESSAGETASK_CONFIG"
)
