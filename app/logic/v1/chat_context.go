package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

type ChatContextLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewChatContextLogic(ctx context.Context, core *core.Core) *ChatContextLogic {
	return &ChatContextLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

type StageContextArgs struct {
	Type     types.ChatContextType `json:"type" binding:"required"`
	TargetID string                `json:"target_id"`
}

// StageContexts 暂存会话上下文，整体替换之前暂存的内容。
// 暂存内容在消息发送时以快照形式落到消息上，不随后续修改变化。
func (l *ChatContextLogic) StageContexts(sessionID string, args []StageContextArgs) (types.ChatContexts, error) {
	session, err := NewChatSessionLogic(l.ctx, l.core).CheckUserChatSession(sessionID)
	if err != nil {
		return nil, errors.Trace("ChatContextLogic.StageContexts", err)
	}

	contexts := make(types.ChatContexts, 0, len(args))
	for _, arg := range args {
		item, err := l.buildContext(session, arg)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, item)
	}

	if err := l.core.Store().ChatSessionContextStore().Upsert(l.ctx, types.ChatSessionContext{
		SessionID: sessionID,
		UserID:    l.GetUserInfo().User,
		Contexts:  contexts,
	}); err != nil {
		return nil, errors.New("ChatContextLogic.StageContexts.ChatSessionContextStore.Upsert", i18n.ERROR_INTERNAL, err)
	}

	return contexts, nil
}

func (l *ChatContextLogic) buildContext(session *types.ChatSession, arg StageContextArgs) (types.ChatContext, error) {
	ctx := types.ChatContext{
		AttachmentID: utils.GenRandomID(),
		Type:         arg.Type,
		TargetID:     arg.TargetID,
	}

	switch arg.Type {
	case types.CHAT_CONTEXT_TYPE_COURSE:
		course, err := l.core.Store().CourseStore().GetByCode(l.ctx, arg.TargetID)
		if err != nil && err != sql.ErrNoRows {
			return ctx, errors.New("ChatContextLogic.buildContext.CourseStore.GetByCode", i18n.ERROR_INTERNAL, err)
		}
		if course == nil {
			return ctx, errors.New("ChatContextLogic.buildContext.CourseNotFound", i18n.ERROR_CONTEXT_TARGET_NOT_FOUND, nil).Code(http.StatusNotFound)
		}

		subscribed, err := l.core.Store().CourseSubscriptionStore().Exist(l.ctx, session.UserID, course.ID)
		if err != nil {
			return ctx, errors.New("ChatContextLogic.buildContext.CourseSubscriptionStore.Exist", i18n.ERROR_INTERNAL, err)
		}
		if !subscribed {
			return ctx, errors.New("ChatContextLogic.buildContext.NotSubscribed", i18n.ERROR_COURSE_NOT_SUBSCRIBED, nil).Code(http.StatusForbidden)
		}
		ctx.Label = course.Name
	case types.CHAT_CONTEXT_TYPE_NOTES:
		note, err := l.core.Store().NoteStore().Get(l.ctx, session.UserID, arg.TargetID)
		if err != nil && err != sql.ErrNoRows {
			return ctx, errors.New("ChatContextLogic.buildContext.NoteStore.Get", i18n.ERROR_INTERNAL, err)
		}
		if note == nil {
			return ctx, errors.New("ChatContextLogic.buildContext.NoteNotFound", i18n.ERROR_CONTEXT_TARGET_NOT_FOUND, nil).Code(http.StatusNotFound)
		}
		ctx.Label = note.Name
	case types.CHAT_CONTEXT_TYPE_FAQ:
		ctx.TargetID = ""
		ctx.Label = "FAQ"
	default:
		return ctx, errors.New("ChatContextLogic.buildContext.UnknownType", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	return ctx, nil
}

// GetStagedContexts 获取会话当前暂存的上下文，没有暂存记录时返回空列表
func (l *ChatContextLogic) GetStagedContexts(sessionID string) (types.ChatContexts, error) {
	if _, err := NewChatSessionLogic(l.ctx, l.core).CheckUserChatSession(sessionID); err != nil {
		return nil, errors.Trace("ChatContextLogic.GetStagedContexts", err)
	}

	record, err := l.core.Store().ChatSessionContextStore().Get(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ChatContextLogic.GetStagedContexts.ChatSessionContextStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if record == nil {
		return types.ChatContexts{}, nil
	}
	return record.Contexts, nil
}

func (l *ChatContextLogic) ClearContexts(sessionID string) error {
	if _, err := NewChatSessionLogic(l.ctx, l.core).CheckUserChatSession(sessionID); err != nil {
		return errors.Trace("ChatContextLogic.ClearContexts", err)
	}

	if err := l.core.Store().ChatSessionContextStore().Delete(l.ctx, sessionID); err != nil {
		return errors.New("ChatContextLogic.ClearContexts.ChatSessionContextStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
