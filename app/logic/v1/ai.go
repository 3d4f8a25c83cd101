package v1

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/app/core/srv"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/types/protocol"
)

// 助教系统提示词，后续可以挪到配置中
const tutorBasePrompt = `You are a patient course tutor. Answer with the learner's staged course, note or FAQ scope in mind. Explain step by step and prefer the course material over outside sources.`

// 通过ws通知前端开始响应用户请求
func getStreamReceiveFunc(ctx context.Context, core *core.Core, sendedCounter SendedCounter, msg *types.ChatMessage) types.ReceiveFunc {
	imTopic := protocol.GenIMTopic(msg.SessionID)
	return func(message types.MessageContent, progressStatus types.MessageProgress) error {
		assistantStatus := types.WS_EVENT_ASSISTANT_CONTINUE
		switch message.Type() {
		case types.MESSAGE_TYPE_TEXT:
			defer sendedCounter.Add(message.Bytes())

			switch progressStatus {
			case types.MESSAGE_PROGRESS_CANCELED:
				assistantStatus = types.WS_EVENT_ASSISTANT_DONE
				if err := core.Store().ChatMessageStore().UpdateMessageCompleteStatus(ctx, msg.SessionID, msg.ID, progressStatus); err != nil {
					slog.Error("failed to finished assistant answer message", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID),
						slog.String("error", err.Error()))
				}
			case types.MESSAGE_PROGRESS_FAILED:
				assistantStatus = types.WS_EVENT_ASSISTANT_FAILED
				if err := core.Store().ChatMessageStore().RewriteMessage(ctx, msg.SessionID, msg.ID, string(message.Bytes()), progressStatus); err != nil {
					slog.Error("failed to rewrite assistant answer message to db", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID),
						slog.String("error", err.Error()))
					return err
				}
			default:
				// todo retry
				if err := core.Store().ChatMessageStore().AppendMessage(ctx, msg.ID, msg.SessionID, string(message.Bytes())); err != nil {
					slog.Error("failed to append assistant answer message to db", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID),
						slog.String("error", err.Error()))
					return err
				}
			}

			if err := core.Srv().Tower().PublishStreamMessage(imTopic, assistantStatus, protocol.NewChunkFrame(msg.ID, string(message.Bytes()), sendedCounter.Get())); err != nil {
				slog.Error("failed to publish assistant answer", slog.String("imtopic", imTopic), slog.String("error", err.Error()))
				return err
			}
		default:
			slog.Error("unknown message type", slog.Int("message_type", int(message.Type())))
			return errors.New("getStreamReceiveFunc.UnknownType", i18n.ERROR_INTERNAL, fmt.Errorf("unknown message type: %d", message.Type()))
		}

		return nil
	}
}

// 通过ws通知前端智能助理完成用户请求
func getStreamDoneFunc(ctx context.Context, core *core.Core, strCounter SendedCounter, msg *types.ChatMessage, callback func(msg *types.ChatMessage)) types.DoneFunc {
	imTopic := protocol.GenIMTopic(msg.SessionID)
	return func(err error) error {
		assistantStatus := types.WS_EVENT_ASSISTANT_DONE
		completeStatus := types.MESSAGE_PROGRESS_COMPLETE

		if err != nil {
			switch err {
			case context.Canceled:
				// 用户主动终止，保留已落库的部分内容但不再继续
				completeStatus = types.MESSAGE_PROGRESS_CANCELED
				core.Metrics().StreamCanceledInc()
			case context.DeadlineExceeded:
				assistantStatus = types.WS_EVENT_ASSISTANT_FAILED
				completeStatus = types.MESSAGE_PROGRESS_REQUEST_TIMEOUT
				core.Metrics().AssistantErrorInc("timeout")
			default:
				assistantStatus = types.WS_EVENT_ASSISTANT_FAILED
				completeStatus = types.MESSAGE_PROGRESS_FAILED
				core.Metrics().AssistantErrorInc("request")
			}

			if err := core.Store().ChatMessageStore().UpdateMessageCompleteStatus(ctx, msg.SessionID, msg.ID, completeStatus); err != nil {
				slog.Error("failed to finished assistant answer message", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID),
					slog.String("error", err.Error()))
				return err
			}
		} else {
			if strCounter.Get() == 0 {
				// 一个字符都没返回，基本上是assistant服务异常
				assistantStatus = types.WS_EVENT_ASSISTANT_FAILED
				completeStatus = types.MESSAGE_PROGRESS_FAILED
				slog.Error("assistant response is empty", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID))
				if err := core.Store().ChatMessageStore().RewriteMessage(ctx, msg.SessionID, msg.ID, types.AssistantFailedMessage, completeStatus); err != nil {
					slog.Error("failed to rewrite empty assistant answer message", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID),
						slog.String("error", err.Error()))
					return err
				}
			} else {
				if err := core.Store().ChatMessageStore().FinishMessage(ctx, msg.SessionID, msg.ID, completeStatus); err != nil {
					slog.Error("failed to finished assistant answer message", slog.String("session_id", msg.SessionID), slog.String("msg_id", msg.ID),
						slog.String("error", err.Error()))
					return err
				}

				if callback != nil {
					callback(msg)
				}
			}
		}

		if err := core.Srv().Tower().PublishStreamMessage(imTopic, assistantStatus, protocol.NewFinalFrame(msg.ID)); err != nil {
			slog.Error("failed to publish assistant final frame", slog.String("imtopic", imTopic), slog.String("error", err.Error()))
			return err
		}
		return nil
	}
}

func DefaultMessager(topic string, tower *srv.Tower) types.Messager {
	return &FireTowerMessager{
		topic: topic,
		tower: tower,
	}
}

type FireTowerMessager struct {
	topic string
	tower *srv.Tower
}

func (s *FireTowerMessager) PublishMessage(_type types.WsEventType, data any) error {
	switch _type {
	case types.WS_EVENT_MESSAGE_PUBLISH:
		meta, ok := data.(*types.MessageMeta)
		if !ok {
			return fmt.Errorf("unexpected payload type for message publish event")
		}
		return s.tower.PublishMessageMeta(s.topic, _type, meta)
	case types.WS_EVENT_ASSISTANT_INIT:
		return s.tower.PublishStreamMessageWithSubject(s.topic, "on_message_init", _type, data)
	case types.WS_EVENT_ASSISTANT_CONTINUE, types.WS_EVENT_ASSISTANT_DONE, types.WS_EVENT_ASSISTANT_FAILED:
		return s.tower.PublishStreamMessage(s.topic, _type, data)
	default:
	}
	return nil
}

func handleAndNotifyAssistantFailed(core *core.Core, receiver types.Receiver, reqMessage *types.ChatMessage, err error) error {
	slog.Error("Failed to request AI", slog.String("error", err.Error()), slog.String("message_id", reqMessage.ID))
	return receiver.GetDoneFunc(nil)(err)
}

// requestAI 向模型发起流式请求并将增量内容交给receiveFunc
func requestAI(ctx context.Context, core *core.Core, messages []*types.MessageContext, receiveFunc types.ReceiveFunc, done types.DoneFunc) error {
	requestCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	resp, err := core.Srv().AI().Chat().QueryStream(requestCtx, messages)
	if err != nil {
		return err
	}
	defer resp.Close()

	firstChunk := core.Metrics().AssistantFirstChunkTimer()
	received := false

	for {
		select {
		case <-ctx.Done():
			return done(ctx.Err())
		default:
		}

		chunk, err := resp.Recv()
		if err == io.EOF {
			return done(nil)
		}
		if err != nil {
			if ctx.Err() != nil {
				return done(ctx.Err())
			}
			return err
		}

		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		if !received {
			received = true
			firstChunk.ObserveDuration()
		}

		if err := receiveFunc(&types.TextMessage{Text: delta}, types.MESSAGE_PROGRESS_GENERATING); err != nil {
			return errors.New("requestAI.receiveFunc", i18n.ERROR_INTERNAL, err)
		}
	}
}

func NewTutorAssistant(core *core.Core) *TutorAssistant {
	return &TutorAssistant{
		core: core,
	}
}

type TutorAssistant struct {
	core *core.Core
}

// GenSessionContext 生成会话上下文：系统提示词 + 指定消息之前已完成的历史记录
func (s *TutorAssistant) GenSessionContext(ctx context.Context, reqMsg *types.ChatMessage) ([]*types.MessageContext, error) {
	history, err := s.core.Store().ChatMessageStore().ListSessionMessageUpToGivenID(ctx, reqMsg.SessionID, reqMsg.ID,
		1, uint64(s.core.Cfg().Assistant.HistoryLimitOrDefault()))
	if err != nil {
		return nil, errors.New("TutorAssistant.GenSessionContext.ChatMessageStore.ListSessionMessageUpToGivenID", i18n.ERROR_INTERNAL, err)
	}

	messages := []*types.MessageContext{
		{
			Role:    types.USER_ROLE_SYSTEM,
			Content: tutorBasePrompt,
		},
	}

	// 列表按sequence倒序返回，这里倒着遍历恢复时间顺序
	for i := len(history) - 1; i >= 0; i-- {
		v := history[i]
		if v.Complete != types.MESSAGE_PROGRESS_COMPLETE && v.ID != reqMsg.ID {
			continue
		}
		if v.Message == "" {
			continue
		}
		messages = append(messages, &types.MessageContext{
			Role:    v.Role,
			Content: v.Message,
		})
	}

	return messages, nil
}

// RequestAssistant 向助教发起请求
// reqMsgInfo 为用户请求的内容，回复内容的数据库记录会被预先创建
func (s *TutorAssistant) RequestAssistant(ctx context.Context, reqMsgInfo *types.ChatMessage, receiver types.Receiver) error {
	seqID, err := s.core.GetChatSessionSeqID(ctx, reqMsgInfo.SessionID)
	if err != nil {
		return errors.Trace("TutorAssistant.RequestAssistant.GetChatSessionSeqID", err)
	}

	msgID := s.core.GenMessageID()
	if mr, ok := receiver.(interface{ MessageID() string }); ok && mr.MessageID() != "" {
		msgID = mr.MessageID()
	}

	if err := receiver.RecvMessageInit(reqMsgInfo, msgID, seqID); err != nil {
		return errors.Trace("TutorAssistant.RequestAssistant.RecvMessageInit", err)
	}

	sessionContext, err := s.GenSessionContext(ctx, reqMsgInfo)
	if err != nil {
		return handleAndNotifyAssistantFailed(s.core, receiver, reqMsgInfo, err)
	}

	timer := s.core.Metrics().AssistantResponseTimer()
	defer timer.ObserveDuration()

	if err := requestAI(ctx, s.core, sessionContext, receiver.GetReceiveFunc(), receiver.GetDoneFunc(nil)); err != nil {
		return handleAndNotifyAssistantFailed(s.core, receiver, reqMsgInfo, err)
	}
	return nil
}

// initAssistantMessage 预先生成承载回复内容的消息记录
func initAssistantMessage(ctx context.Context, core *core.Core, msgID string, seqID int64, userReqMsg *types.ChatMessage) (*types.ChatMessage, error) {
	answerMsg := genUncompleteAIMessage(userReqMsg.SessionID, msgID, seqID)
	answerMsg.UserID = userReqMsg.UserID // 回复消息同样归属于发起会话的用户

	err := core.Store().Transaction(ctx, func(ctx context.Context) error {
		if err := core.Store().ChatMessageStore().Create(ctx, answerMsg); err != nil {
			slog.Error("failed to insert assistant answer message to db", slog.String("msg_id", answerMsg.ID), slog.String("session_id", answerMsg.SessionID), slog.String("error", err.Error()))
			return err
		}

		if err := core.Store().ChatSessionStore().IncrMessageCount(ctx, answerMsg.SessionID, 1); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return answerMsg, nil
}

// generate uncomplete assistant response message meta
func genUncompleteAIMessage(sessionID, msgID string, seqID int64) *types.ChatMessage {
	return &types.ChatMessage{
		ID:        msgID,
		Sequence:  seqID,
		Role:      types.USER_ROLE_ASSISTANT,
		SendTime:  time.Now().Unix(),
		MsgType:   types.MESSAGE_TYPE_TEXT,
		Complete:  types.MESSAGE_PROGRESS_GENERATING,
		SessionID: sessionID,
	}
}

func NewChatReceiver(ctx context.Context, core *core.Core, msger types.Messager, answerMsgID string) *ChatReceiveHandler {
	return &ChatReceiveHandler{
		ctx:           ctx,
		core:          core,
		Messager:      msger,
		answerMsgID:   answerMsgID,
		sendedCounter: &sendedCounter{},
	}
}

type SendedCounter interface {
	Add(n []byte)
	Get() int
}

type sendedCounter struct {
	counter int
}

func (s *sendedCounter) Add(n []byte) {
	s.counter += len([]rune(string(n)))
}

func (s *sendedCounter) Get() int {
	return s.counter
}

type ChatReceiveHandler struct {
	ctx  context.Context
	core *core.Core
	types.Messager
	answerMsgID   string
	receiveMsg    *types.ChatMessage
	sendedCounter *sendedCounter
}

func (s *ChatReceiveHandler) IsStream() bool {
	return true
}

func (s *ChatReceiveHandler) MessageID() string {
	return s.answerMsgID
}

func (s *ChatReceiveHandler) RecvMessageInit(userReqMsg *types.ChatMessage, msgID string, seqID int64) error {
	ctx, cancel := context.WithTimeout(s.ctx, time.Second*5)
	defer cancel()
	var err error
	s.receiveMsg, err = initAssistantMessage(ctx, s.core, msgID, seqID, userReqMsg)
	if err != nil {
		return err
	}
	if err := s.PublishMessage(types.WS_EVENT_ASSISTANT_INIT, protocol.NewStartFrame(msgID)); err != nil {
		return err
	}
	return nil
}

func (s *ChatReceiveHandler) GetReceiveFunc() types.ReceiveFunc {
	return getStreamReceiveFunc(s.ctx, s.core, s.sendedCounter, s.receiveMsg)
}

func (s *ChatReceiveHandler) GetDoneFunc(callback func(msg *types.ChatMessage)) types.DoneFunc {
	return getStreamDoneFunc(s.ctx, s.core, s.sendedCounter, s.receiveMsg, callback)
}
