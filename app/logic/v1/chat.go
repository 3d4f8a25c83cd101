package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/safe"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/types/protocol"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

// 会话命名取自首条消息原文的前15个字符
const sessionNameRunes = 15

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func GenUserTextMessage(sessionID, userID, msgID, message string) *types.ChatMessage {
	return &types.ChatMessage{
		ID:        msgID,
		SessionID: sessionID,
		UserID:    userID,
		Role:      types.USER_ROLE_USER,
		Message:   message,
		MsgType:   types.MESSAGE_TYPE_TEXT,
		SendTime:  time.Now().Unix(),
		Complete:  types.MESSAGE_PROGRESS_COMPLETE,
	}
}

type CreateMessageResult struct {
	MessageID              string             `json:"message_id"`
	CurrentMessageSequence int64              `json:"current_message_sequence"`
	AnswerMessageID        string             `json:"answer_message_id"`
	SentText               string             `json:"sent_text"`
	Contexts               types.ChatContexts `json:"contexts"`
	SessionName            string             `json:"session_name,omitempty"`
}

// NewUserMessage 发送用户消息并触发助教回复。
// 发送时会话暂存的上下文会以快照形式附着到消息上，外发文本由指令前缀与用户原文拼接而成。
// 同一会话同时只允许一条回复在生成中。
func (l *ChatLogic) NewUserMessage(chatSession *types.ChatSession, msgArgs types.CreateChatMessageArgs) (result CreateMessageResult, err error) {
	if chatSession == nil {
		return result, errors.New("ChatLogic.NewUserMessage.session", i18n.ERROR_INTERNAL, nil)
	}

	slog.Debug("new message", slog.String("msg_id", msgArgs.ID), slog.String("user_id", l.GetUserInfo().User), slog.String("session_id", chatSession.ID))

	lockCtx, releaseLock := context.WithCancel(context.Background())
	if ok, lockErr := l.core.TryLock(lockCtx, protocol.GenChatSessionAIRequestKey(chatSession.ID)); lockErr != nil {
		releaseLock()
		return result, errors.New("ChatLogic.NewUserMessage.TryLock", i18n.ERROR_INTERNAL, lockErr)
	} else if !ok {
		releaseLock()
		slog.Debug("duplicate assistant request", slog.String("msg_id", msgArgs.ID), slog.String("session_id", chatSession.ID))
		return result, errors.New("ChatLogic.NewUserMessage.TryLock", i18n.ERROR_SESSION_BUSY, nil).Code(http.StatusTooManyRequests)
	}
	defer func() {
		if err != nil {
			releaseLock()
		}
	}()

	// 读取暂存的上下文并生成快照
	staged, err := l.core.Store().ChatSessionContextStore().Get(l.ctx, chatSession.ID)
	if err != nil && err != sql.ErrNoRows {
		return result, errors.New("ChatLogic.NewUserMessage.ChatSessionContextStore.Get", i18n.ERROR_INTERNAL, err)
	}

	var snapshots types.ChatContexts
	if staged != nil {
		for _, c := range staged.Contexts {
			snapshots = append(snapshots, c.Snapshot())
		}
	}

	sentText := snapshots.ComposeOutgoingText(msgArgs.Message)

	msgID := msgArgs.ID
	if msgID == "" {
		msgID = l.core.GenMessageID()
	}
	sendTime := msgArgs.SendTime
	if sendTime == 0 {
		sendTime = time.Now().Unix()
	}

	msg := &types.ChatMessage{
		ID:        msgID,
		UserID:    l.GetUserInfo().User,
		SessionID: chatSession.ID,
		Message:   sentText,
		MsgType:   types.MESSAGE_TYPE_TEXT,
		SendTime:  sendTime,
		Role:      types.USER_ROLE_USER,
		Complete:  types.MESSAGE_PROGRESS_COMPLETE,
		Contexts:  snapshots,
	}

	if msg.Sequence, err = l.core.GetChatSessionSeqID(l.ctx, chatSession.ID); err != nil {
		return result, errors.Trace("ChatLogic.NewUserMessage.GetChatSessionSeqID", err)
	}

	sessionName := chatSession.Name
	// 收尾的落库和推送动作需要在生成超时后仍可执行，所以多留一段余量
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(l.core.Cfg().Assistant.GenerateTimeoutOrDefault())*time.Second+time.Second*30)
	defer func() {
		if err != nil {
			cancel()
		}
	}()

	messager := DefaultMessager(protocol.GenIMTopic(chatSession.ID), l.core.Srv().Tower())
	receiver := NewChatReceiver(ctx, l.core, messager, l.core.GenMessageID())

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ChatMessageStore().Create(ctx, msg); err != nil {
			return errors.New("ChatLogic.NewUserMessage.ChatMessageStore.Create", i18n.ERROR_INTERNAL, err)
		}

		if err := l.core.Store().ChatSessionStore().IncrMessageCount(ctx, chatSession.ID, 1); err != nil {
			return errors.New("ChatLogic.NewUserMessage.ChatSessionStore.IncrMessageCount", i18n.ERROR_INTERNAL, err)
		}

		// 首条消息发出后为会话命名，一旦命名成功不会被后续消息覆盖
		if chatSession.Name == "" {
			sessionName = utils.FirstRunes(msgArgs.Message, sessionNameRunes)
			if err := l.core.Store().ChatSessionStore().RenameOnFirstMessage(ctx, chatSession.ID, sessionName); err != nil {
				return errors.New("ChatLogic.NewUserMessage.ChatSessionStore.RenameOnFirstMessage", i18n.ERROR_INTERNAL, err)
			}
		}

		if err := messager.PublishMessage(types.WS_EVENT_MESSAGE_PUBLISH, chatMsgToTextMsg(msg)); err != nil {
			slog.Error("failed to publish user message", slog.String("imtopic", protocol.GenIMTopic(chatSession.ID)),
				slog.String("msg_id", msg.ID),
				slog.String("session_id", chatSession.ID),
				slog.String("error", err.Error()))
			return errors.New("ChatLogic.NewUserMessage.Messager.PublishMessage", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if chatSession.Name == "" && sessionName != "" {
		l.core.Srv().Tower().PublishSessionReName(protocol.GenIMTopic(chatSession.ID), chatSession.ID, sessionName)
	}

	go safe.Run(func() {
		// update session latest access time
		if err := l.core.Store().ChatSessionStore().UpdateLatestAccessTime(context.Background(), chatSession.ID); err != nil {
			slog.Error("Failed to update chat session latest access time", slog.String("error", err.Error()),
				slog.String("session_id", chatSession.ID))
		}
	})

	go safe.Run(func() {
		defer cancel()
		if err := ChatSessionHandle(l.core, receiver, msg, releaseLock); err != nil {
			slog.Error("Failed to handle message", slog.String("msg_id", msg.ID), slog.String("error", err.Error()))
		}
	})

	result.MessageID = msg.ID
	result.CurrentMessageSequence = msg.Sequence
	result.AnswerMessageID = receiver.MessageID()
	result.SentText = sentText
	result.Contexts = snapshots
	result.SessionName = sessionName
	return result, nil
}

// ChatSessionHandle 请求助教产出回复，期间监听停止信号
func ChatSessionHandle(core *core.Core, receiver types.Receiver, userMessage *types.ChatMessage, releaseLock func()) error {
	defer releaseLock()

	reqCtx, reqCancel := context.WithTimeout(context.Background(),
		time.Duration(core.Cfg().Assistant.GenerateTimeoutOrDefault())*time.Second)
	defer reqCancel()

	// listen to stop chat stream
	removeSignalFunc := core.Srv().Tower().RegisterStreamSignal(userMessage.SessionID, func() {
		slog.Debug("close chat stream", slog.String("session_id", userMessage.SessionID))
		reqCancel()
	})
	defer removeSignalFunc()

	return core.AIChatLogic().RequestAssistant(reqCtx, userMessage, receiver)
}

func chatMsgToTextMsg(msg *types.ChatMessage) *types.MessageMeta {
	return &types.MessageMeta{
		MsgID:       msg.ID,
		SeqID:       msg.Sequence,
		SendTime:    msg.SendTime,
		Role:        msg.Role,
		UserID:      msg.UserID,
		SessionID:   msg.SessionID,
		MessageType: msg.MsgType,
		Message: types.MessageTypeImpl{
			Text: msg.Message,
		},
		Contexts: msg.Contexts,
		Complete: msg.Complete,
	}
}

// StopStream 广播停止信号，正在生成中的回复会被标记为已取消
func (l *ChatLogic) StopStream(sessionID string) error {
	if _, err := NewChatSessionLogic(l.ctx, l.core).CheckUserChatSession(sessionID); err != nil {
		return errors.Trace("ChatLogic.StopStream", err)
	}

	if err := l.core.Srv().Tower().NewCloseChatStreamSignal(sessionID); err != nil {
		return errors.New("ChatLogic.StopStream.Tower.NewCloseChatStreamSignal", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
