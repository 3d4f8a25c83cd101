package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/studyhall-ai/studyhall/pkg/types"
)

type ModelName struct {
	ChatModel string
}

// Query is the upstream chat model boundary. QueryStream drives the
// token-chunked answer path, Query is the blocking variant kept for
// non-interactive callers.
type Query interface {
	Lang() string
	Query(ctx context.Context, query []*types.MessageContext) (GenerateResponse, error)
	QueryStream(ctx context.Context, query []*types.MessageContext) (*openai.ChatCompletionStream, error)
}

const (
	MODEL_BASE_LANGUAGE_EN = "en"
	MODEL_BASE_LANGUAGE_CN = "zh"
)

type GenerateResponse struct {
	Received []string      `json:"received"`
	Usage    *openai.Usage `json:"usage"`
	Model    string        `json:"model"`
}

func (r GenerateResponse) Message() string {
	return strings.Join(r.Received, "")
}
