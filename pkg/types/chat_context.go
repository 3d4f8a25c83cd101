package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ChatContextType string

const (
	CHAT_CONTEXT_TYPE_COURSE ChatContextType = "course"
	CHAT_CONTEXT_TYPE_NOTES  ChatContextType = "notes"
	CHAT_CONTEXT_TYPE_FAQ    ChatContextType = "faq"
)

// ChatContext is a scope tag staged on a session and snapshotted onto each
// outgoing message. TargetID is the course code for courses and the note id
// for notes; empty for faq. Label is denormalized display text captured at
// staging time so old transcripts survive later renames or deletions.
type ChatContext struct {
	AttachmentID string          `json:"attachment_id"`
	Type         ChatContextType `json:"type"`
	TargetID     string          `json:"target_id"`
	Label        string          `json:"label"`
}

// Directive renders the routing prefix the downstream agent parses.
// Missing fields interpolate as empty strings, no validation here.
func (c ChatContext) Directive() string {
	switch c.Type {
	case CHAT_CONTEXT_TYPE_COURSE:
		return fmt.Sprintf("Course %s:", c.TargetID)
	case CHAT_CONTEXT_TYPE_NOTES:
		return fmt.Sprintf("Note %s:", c.TargetID)
	case CHAT_CONTEXT_TYPE_FAQ:
		return "FAQ:"
	default:
		return ""
	}
}

// Snapshot deep-copies the context with a fresh attachment id, for
// denormalizing onto a sent message.
func (c ChatContext) Snapshot() ChatContext {
	cp := c
	cp.AttachmentID = uuid.NewString()
	return cp
}

type ChatContexts []ChatContext

// ComposeOutgoingText prefixes the staged directives onto the literal user
// text. With nothing staged the text passes through unchanged.
func (s ChatContexts) ComposeOutgoingText(text string) string {
	if len(s) == 0 {
		return text
	}

	var parts []string
	for _, c := range s {
		if d := c.Directive(); d != "" {
			parts = append(parts, d)
		}
	}
	parts = append(parts, text)
	return strings.Join(parts, " ")
}

func (s ChatContexts) Value() (driver.Value, error) {
	raw, err := json.Marshal(s)
	return string(raw), err
}

func (s *ChatContexts) String() string {
	raw, _ := json.Marshal(s)
	return string(raw)
}

func (s *ChatContexts) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return s.scanBytes(src)
	case string:
		return s.scanBytes([]byte(src))
	case nil:
		*s = nil
		return nil
	}

	return fmt.Errorf("pq: cannot convert %T to ChatContexts", src)
}

func (s *ChatContexts) scanBytes(src []byte) error {
	if len(src) == 0 {
		*s = ChatContexts{}
		return nil
	}
	return json.Unmarshal(src, s)
}

// ChatSessionContext is the staged context row for a session, one row per
// session at most. Staging a new context replaces the previous one.
type ChatSessionContext struct {
	SessionID string       `json:"session_id" db:"session_id"`
	UserID    string       `json:"user_id" db:"user_id"`
	Contexts  ChatContexts `json:"contexts" db:"contexts"`
	CreatedAt int64        `json:"created_at" db:"created_at"`
	UpdatedAt int64        `json:"updated_at" db:"updated_at"`
}
