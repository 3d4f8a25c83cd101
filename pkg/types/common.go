package types

const (
	NO_PAGINATION = 0

	NOT_DELETE = 0
	DELETED    = 1
)

type WsEventType int32

const (
	WS_EVENT_UNKNOWN            WsEventType = 0
	WS_EVENT_ASSISTANT_INIT     WsEventType = 1   // bot消息载体已创建
	WS_EVENT_ASSISTANT_CONTINUE WsEventType = 2   // bot 回复中
	WS_EVENT_ASSISTANT_DONE     WsEventType = 3   // bot 回复完成
	WS_EVENT_ASSISTANT_FAILED   WsEventType = 4   // bot 请求失败
	WS_EVENT_MESSAGE_PUBLISH    WsEventType = 100 // 新消息推送
	WS_EVENT_SESSION_RENAME     WsEventType = 101 // 会话自动重命名
	WS_EVENT_SYSTEM_ONSUBSCRIBE WsEventType = 300 // IMTopic 成功订阅
	WS_EVENT_SYSTEM_UNSUBSCRIBE WsEventType = 301 // IMTopic 取消订阅
	WS_EVENT_OTHERS             WsEventType = 400 // 其他未定义事件
)

const (
	LANGUAGE_EN_KEY = "en"
	LANGUAGE_CN_KEY = "zh-CN"
)

const (
	// event notify
	TOWER_EVENT_CLOSE_CHAT_STREAM = "/studyhall/event/chat/close_stream"
	DEFAULT_APPID                 = "studyhall"
)
