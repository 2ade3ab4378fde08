package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_ApplyKeepsIdentity(t *testing.T) {
	m := &Message{Seq: 7, ID: "m1", From: "Alice", To: BroadcastTarget, Text: "hi", Type: MessageTypeMessage, Time: "12:00:00"}

	m.Apply(MessageUpdate{To: "Bob", Text: "edited", Type: MessageTypePrivateMessage, Time: "12:00:05"})

	assert.Equal(t, &Message{
		Seq: 7, ID: "m1", From: "Alice",
		To: "Bob", Text: "edited", Type: MessageTypePrivateMessage, Time: "12:00:05",
	}, m)
}
