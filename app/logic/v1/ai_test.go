package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyhall-ai/studyhall/pkg/types"
)

func TestSendedCounterCountsRunes(t *testing.T) {
	c := &sendedCounter{}
	assert.Equal(t, 0, c.Get())

	c.Add([]byte("hello"))
	assert.Equal(t, 5, c.Get())

	c.Add([]byte("你好"))
	assert.Equal(t, 7, c.Get())
}

func TestGenUserTextMessage(t *testing.T) {
	msg := GenUserTextMessage("sess-1", "user-1", "msg-1", "explain week 3")
	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, "sess-1", msg.SessionID)
	assert.Equal(t, "user-1", msg.UserID)
	assert.Equal(t, types.USER_ROLE_USER, msg.Role)
	assert.Equal(t, types.MESSAGE_PROGRESS_COMPLETE, msg.Complete)
	assert.NotZero(t, msg.SendTime)
}

func TestGenUncompleteAIMessage(t *testing.T) {
	msg := genUncompleteAIMessage("sess-1", "msg-2", 4)
	assert.Equal(t, types.USER_ROLE_ASSISTANT, msg.Role)
	assert.Equal(t, types.MESSAGE_PROGRESS_GENERATING, msg.Complete)
	assert.Equal(t, int64(4), msg.Sequence)
	assert.Empty(t, msg.Message)
}
