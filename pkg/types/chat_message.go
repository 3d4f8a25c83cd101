package types

type ChatMessage struct {
	ID        string          `db:"id" json:"id"`
	SessionID string          `db:"session_id" json:"session_id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Role      MessageUserRole `db:"role" json:"role"`
	Message   string          `db:"message" json:"message"`
	MsgType   MessageType     `db:"msg_type" json:"msg_type"`
	SendTime  int64           `db:"send_time" json:"send_time"`
	Complete  MessageProgress `db:"complete" json:"complete"`
	Sequence  int64           `db:"sequence" json:"sequence"`
	Contexts  ChatContexts    `db:"contexts" json:"contexts"`
}

type CreateChatMessageArgs struct {
	ID       string
	Message  string
	MsgType  MessageType
	SendTime int64
	Contexts ChatContexts
}

type MessageUserRole int8

const (
	USER_ROLE_UNKNOWN   MessageUserRole = 0
	USER_ROLE_USER      MessageUserRole = 1 // 用户
	USER_ROLE_ASSISTANT MessageUserRole = 2 // bot
	USER_ROLE_SYSTEM    MessageUserRole = 3
)

func (s MessageUserRole) String() string {
	return GetMessageUserRoleStr(s)
}

func GetMessageUserRoleStr(r MessageUserRole) string {
	switch r {
	case USER_ROLE_ASSISTANT:
		return "assistant"
	case USER_ROLE_USER:
		return "user"
	case USER_ROLE_SYSTEM:
		return "system"
	default:
		return "unknown"
	}
}

func GetMessageUserRole(r string) MessageUserRole {
	switch r {
	case "assistant":
		return USER_ROLE_ASSISTANT
	case "user":
		return USER_ROLE_USER
	case "system":
		return USER_ROLE_SYSTEM
	default:
		return USER_ROLE_UNKNOWN
	}
}

type MessageProgress int8

const (
	MESSAGE_PROGRESS_UNKNOWN         MessageProgress = 0
	MESSAGE_PROGRESS_COMPLETE        MessageProgress = 1
	MESSAGE_PROGRESS_UNCOMPLETE      MessageProgress = 2
	MESSAGE_PROGRESS_GENERATING      MessageProgress = 3
	MESSAGE_PROGRESS_FAILED          MessageProgress = 4
	MESSAGE_PROGRESS_CANCELED        MessageProgress = 5
	MESSAGE_PROGRESS_REQUEST_TIMEOUT MessageProgress = 7
)

const AssistantFailedMessage = "Sorry, something went wrong while answering. Please try again."

type MessageType int8

const (
	MESSAGE_TYPE_UNKNOWN MessageType = 0
	MESSAGE_TYPE_TEXT    MessageType = 1
)

type MessageMeta struct {
	MsgID       string          `json:"message_id"`
	SeqID       int64           `json:"sequence"`
	SendTime    int64           `json:"send_time"`
	Role        MessageUserRole `json:"role"`
	UserID      string          `json:"user_id"`
	SessionID   string          `json:"session_id"`
	Complete    MessageProgress `json:"complete"`
	MessageType MessageType     `json:"message_type"`
	Message     MessageTypeImpl `json:"message"`
	Contexts    ChatContexts    `json:"contexts"`
}

type MessageTypeImpl struct {
	Text string `json:"text"`
}

// MessageDetail is the transcript entry returned to clients: the persisted
// meta plus the markdown rendering of bot answers.
type MessageDetail struct {
	Meta     *MessageMeta `json:"meta"`
	Rendered string       `json:"rendered,omitempty"`
}
