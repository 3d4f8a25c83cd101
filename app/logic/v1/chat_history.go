package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/app/core/srv"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/markdown"
	"github.com/studyhall-ai/studyhall/pkg/safe"
	"github.com/studyhall-ai/studyhall/pkg/types"
)

type HistoryLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewHistoryLogic(ctx context.Context, core *core.Core) *HistoryLogic {
	return &HistoryLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

// 被取消的助教消息不进入回看记录，半截回答对用户没有意义
func historyVisible(item types.ChatMessage) bool {
	return !(item.Role == types.USER_ROLE_ASSISTANT && item.Complete == types.MESSAGE_PROGRESS_CANCELED)
}

// GetHistoryMessage 返回会话的历史消息，按sequence倒序（最新在前）。
// afterMsgID 不为空时只返回不晚于该消息的内容。助教消息额外带上渲染后的HTML。
func (l *HistoryLogic) GetHistoryMessage(sessionID, afterMsgID string, page, pageSize uint64) ([]*types.MessageDetail, int64, error) {
	if _, err := NewChatSessionLogic(l.ctx, l.core).CheckUserChatSession(sessionID); err != nil {
		return nil, 0, errors.Trace("HistoryLogic.GetHistoryMessage", err)
	}

	list, err := l.core.Store().ChatMessageStore().ListSessionMessageUpToGivenID(l.ctx, sessionID, afterMsgID, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("HistoryLogic.GetHistoryMessage.ChatMessageStore.ListSessionMessageUpToGivenID", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().ChatMessageStore().TotalSessionMessage(l.ctx, sessionID)
	if err != nil {
		return nil, 0, errors.New("HistoryLogic.GetHistoryMessage.ChatMessageStore.TotalSessionMessage", i18n.ERROR_INTERNAL, err)
	}

	go safe.Run(func() {
		if err := l.core.Store().ChatSessionStore().UpdateLatestAccessTime(context.Background(), sessionID); err != nil {
			slog.Error("Failed to update chat session latest access time", slog.String("error", err.Error()),
				slog.String("session_id", sessionID))
		}
	})

	list = lo.Filter(list, func(item types.ChatMessage, _ int) bool {
		return historyVisible(item)
	})

	details := lo.Map(list, func(item types.ChatMessage, _ int) *types.MessageDetail {
		detail := &types.MessageDetail{
			Meta: chatMsgToTextMsg(&item),
		}
		if item.Role == types.USER_ROLE_ASSISTANT && item.Complete == types.MESSAGE_PROGRESS_COMPLETE {
			rendered, err := markdown.RenderHTML(item.Message)
			if err != nil {
				slog.Error("Failed to render assistant message", slog.String("msg_id", item.ID), slog.String("error", err.Error()))
			} else {
				detail.Rendered = rendered
			}
		}
		return detail
	})

	return details, total, nil
}

// GetMessage 返回单条消息详情
func (l *HistoryLogic) GetMessage(messageID string) (*types.ChatMessage, error) {
	msg, err := l.core.Store().ChatMessageStore().GetOne(l.ctx, messageID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("HistoryLogic.GetMessage.ChatMessageStore.GetOne", i18n.ERROR_INTERNAL, err)
	}
	if msg == nil {
		return nil, errors.New("HistoryLogic.GetMessage.NotFound", i18n.ERROR_MESSAGE_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err := l.Identification(l.lazyRolerFromMessageID(messageID), srv.PermissionChat); err != nil {
		return nil, err
	}
	return msg, nil
}
