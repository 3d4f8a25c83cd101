package protocol

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ChatSessionIMTopicPrefix = "/chat_session/"
)

func GenIMTopic(sessionID string) string {
	return fmt.Sprintf("%s%s", ChatSessionIMTopicPrefix, sessionID)
}

func GenChatSessionAIRequestKey(sessionID string) string {
	return fmt.Sprintf("chat_session_ai_request:%s", sessionID)
}

func GetChatSessionID(imtopic string) (string, error) {
	idStr := filepath.Base(imtopic)
	return idStr, nil
}

func IsIMTopic(imtopic string) bool {
	return strings.HasPrefix(imtopic, ChatSessionIMTopicPrefix)
}

const (
	FRAME_TYPE_START = "start"
	FRAME_TYPE_CHUNK = "chunk"
)

// StreamFrame is one inbound payload of a streamed answer. A start frame
// resets the client accumulator, chunk frames append content, and the frame
// carrying final=true closes the message. StartAt is the rune offset of the
// chunk within the full answer so clients can reconcile partial renders.
type StreamFrame struct {
	Type      string `json:"type,omitempty"`
	Content   string `json:"content,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	StartAt   int    `json:"start_at,omitempty"`
	Final     bool   `json:"final,omitempty"`
}

func NewStartFrame(messageID string) StreamFrame {
	return StreamFrame{
		Type:      FRAME_TYPE_START,
		MessageID: messageID,
	}
}

func NewChunkFrame(messageID, content string, startAt int) StreamFrame {
	return StreamFrame{
		Type:      FRAME_TYPE_CHUNK,
		Content:   content,
		MessageID: messageID,
		StartAt:   startAt,
	}
}

func NewFinalFrame(messageID string) StreamFrame {
	return StreamFrame{
		MessageID: messageID,
		Final:     true,
	}
}
