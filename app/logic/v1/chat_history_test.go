package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyhall-ai/studyhall/pkg/types"
)

func TestHistoryVisible(t *testing.T) {
	assert.True(t, historyVisible(types.ChatMessage{
		Role:     types.USER_ROLE_USER,
		Message:  "what is the chain rule?",
		Complete: types.MESSAGE_PROGRESS_COMPLETE,
	}))
	assert.True(t, historyVisible(types.ChatMessage{
		Role:     types.USER_ROLE_ASSISTANT,
		Message:  "The chain rule states...",
		Complete: types.MESSAGE_PROGRESS_COMPLETE,
	}))

	// 取消的助教回复无论有没有产出内容都不展示
	assert.False(t, historyVisible(types.ChatMessage{
		Role:     types.USER_ROLE_ASSISTANT,
		Message:  "",
		Complete: types.MESSAGE_PROGRESS_CANCELED,
	}))
	assert.False(t, historyVisible(types.ChatMessage{
		Role:     types.USER_ROLE_ASSISTANT,
		Message:  "The chain rule",
		Complete: types.MESSAGE_PROGRESS_CANCELED,
	}))

	// 用户消息不受取消态影响
	assert.True(t, historyVisible(types.ChatMessage{
		Role:     types.USER_ROLE_USER,
		Message:  "hello",
		Complete: types.MESSAGE_PROGRESS_CANCELED,
	}))
}
