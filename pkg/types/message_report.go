package types

type MessageReport struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
	MessageID string `json:"message_id" db:"message_id"`
	UserID    string `json:"user_id" db:"user_id"`
	Reason    string `json:"reason" db:"reason"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
