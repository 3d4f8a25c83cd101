package types

import "github.com/lib/pq"

type ChatSession struct {
	ID                string         `json:"id" db:"id"`
	UserID            string         `json:"user_id" db:"user_id"`
	Name              string         `json:"name" db:"name"`
	MessageCount      int64          `json:"message_count" db:"message_count"`
	IsBookmarked      bool           `json:"is_bookmarked" db:"is_bookmarked"`
	SubscribedCourses pq.StringArray `json:"subscribed_courses" db:"subscribed_courses"`
	CreatedAt         int64          `json:"created_at" db:"created_at"`
	LatestAccessTime  int64          `json:"latest_access_time" db:"latest_access_time"`
}

// UpdateChatSessionArgs are the mutable fields of a session. Nil means
// "leave unchanged" so a patch can touch one field at a time.
type UpdateChatSessionArgs struct {
	Name         *string
	IsBookmarked *bool
}
