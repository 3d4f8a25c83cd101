package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "studyhall_"

const (
	TABLE_CHAT_SESSION         = TableName("chat_session")
	TABLE_CHAT_SESSION_CONTEXT = TableName("chat_session_context")
	TABLE_CHAT_MESSAGE         = TableName("chat_message")
	TABLE_MESSAGE_REPORT       = TableName("message_report")
	TABLE_COURSE               = TableName("course")
	TABLE_COURSE_SUBSCRIPTION  = TableName("course_subscription")
	TABLE_NOTE                 = TableName("note")
	TABLE_ACCESS_TOKEN         = TableName("access_token")
)
