package types

import "encoding/json"

type ReceiveFunc func(msg MessageContent, progressStatus MessageProgress) error
type DoneFunc func(err error) error

// websocket 推送实现
type Messager interface {
	PublishMessage(_type WsEventType, data any) error
}

type Receiver interface {
	IsStream() bool
	GetReceiveFunc() ReceiveFunc
	GetDoneFunc(callback func(msg *ChatMessage)) DoneFunc
	RecvMessageInit(userReqMsg *ChatMessage, msgID string, seqID int64) error
}

type MessageContent interface {
	Bytes() json.RawMessage
	Type() MessageType
}

type TextMessage struct {
	Text string `json:"text"`
}

func (t *TextMessage) Bytes() json.RawMessage {
	return json.RawMessage(t.Text)
}

func (t *TextMessage) Type() MessageType {
	return MESSAGE_TYPE_TEXT
}
