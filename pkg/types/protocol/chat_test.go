package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenIMTopic(t *testing.T) {
	topic := GenIMTopic("sess-1")
	assert.Equal(t, "/chat_session/sess-1", topic)
	assert.True(t, IsIMTopic(topic))

	id, err := GetChatSessionID(topic)
	assert.NoError(t, err)
	assert.Equal(t, "sess-1", id)

	assert.False(t, IsIMTopic("/other/sess-1"))
}

func TestGenChatSessionAIRequestKey(t *testing.T) {
	assert.Equal(t, "chat_session_ai_request:sess-1", GenChatSessionAIRequestKey("sess-1"))
}

func TestStreamFrames(t *testing.T) {
	start := NewStartFrame("msg-1")
	assert.Equal(t, FRAME_TYPE_START, start.Type)
	assert.Equal(t, "msg-1", start.MessageID)
	assert.False(t, start.Final)

	chunk := NewChunkFrame("msg-1", "hello", 12)
	assert.Equal(t, FRAME_TYPE_CHUNK, chunk.Type)
	assert.Equal(t, "hello", chunk.Content)
	assert.Equal(t, 12, chunk.StartAt)
	assert.False(t, chunk.Final)

	final := NewFinalFrame("msg-1")
	assert.True(t, final.Final)
	assert.Equal(t, "msg-1", final.MessageID)
	assert.Empty(t, final.Content)
}
