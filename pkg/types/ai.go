package types

import (
	"github.com/sashabaranov/go-openai"
)

type MessageContext struct {
	Role    MessageUserRole `json:"role"`
	Content string          `json:"content"`
}

func (m MessageContext) ToOpenAI() openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    m.Role.String(),
		Content: m.Content,
	}
}

type ResponseChoice struct {
	ID           string
	Message      string
	FinishReason string
	Error        error
}
