package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/app/core/srv"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/types/protocol"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

type ChatSessionLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewChatSessionLogic(ctx context.Context, core *core.Core) *ChatSessionLogic {
	return &ChatSessionLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *ChatSessionLogic) CheckUserChatSession(sessionID string) (*types.ChatSession, error) {
	session, err := l.core.Store().ChatSessionStore().GetChatSession(l.ctx, "", sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ChatSessionLogic.CheckUserChatSession.ChatSessionStore.GetChatSession", i18n.ERROR_INTERNAL, err)
	}
	if session == nil {
		return nil, errors.New("ChatSessionLogic.CheckUserChatSession.ChatSessionStore.GetChatSessionnil", i18n.ERROR_SESSION_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if session.UserID != l.GetUserInfo().User {
		return nil, errors.New("ChatSessionLogic.CheckUserChatSession.unauth", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	return session, nil
}

// CreateChatSession 创建未命名会话，首条消息发送后才会被命名
func (l *ChatSessionLogic) CreateChatSession() (*types.ChatSession, error) {
	subscribed, err := l.core.Store().CourseSubscriptionStore().ListUserCourses(l.ctx, l.GetUserInfo().User)
	if err != nil {
		return nil, errors.New("ChatSessionLogic.CreateChatSession.CourseSubscriptionStore.ListUserCourses", i18n.ERROR_INTERNAL, err)
	}

	codes := make([]string, 0, len(subscribed))
	for _, c := range subscribed {
		codes = append(codes, c.Code)
	}

	chatSession := types.ChatSession{
		ID:                utils.GenSpecIDStr(),
		UserID:            l.GetUserInfo().User,
		Name:              "",
		SubscribedCourses: codes,
	}
	if err := l.core.Store().ChatSessionStore().Create(l.ctx, chatSession); err != nil {
		return nil, errors.New("ChatSessionLogic.CreateChatSession.ChatSessionStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return &chatSession, nil
}

func (l *ChatSessionLogic) GetByID(sessionID string) (*types.ChatSession, error) {
	session, err := l.CheckUserChatSession(sessionID)
	if err != nil {
		return nil, errors.Trace("ChatSessionLogic.GetByID", err)
	}
	return session, nil
}

// ListUserChatSessions 默认隐藏从未产生过消息的会话
func (l *ChatSessionLogic) ListUserChatSessions(hideEmpty bool, page, pageSize uint64) ([]types.ChatSession, int64, error) {
	list, err := l.core.Store().ChatSessionStore().List(l.ctx, l.GetUserInfo().User, hideEmpty, page, pageSize)
	if err != nil {
		return nil, 0, errors.New("ChatSessionLogic.ListUserChatSessions.ChatSessionStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().ChatSessionStore().Total(l.ctx, l.GetUserInfo().User, hideEmpty)
	if err != nil {
		return nil, 0, errors.New("ChatSessionLogic.ListUserChatSessions.ChatSessionStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

// UpdateChatSession 修改会话的可变字段，nil 表示不修改
func (l *ChatSessionLogic) UpdateChatSession(sessionID string, args types.UpdateChatSessionArgs) error {
	session, err := l.CheckUserChatSession(sessionID)
	if err != nil {
		return errors.Trace("ChatSessionLogic.UpdateChatSession", err)
	}

	if args.Name != nil && *args.Name != session.Name {
		if err := l.core.Store().ChatSessionStore().UpdateSessionName(l.ctx, sessionID, *args.Name); err != nil {
			return errors.New("ChatSessionLogic.UpdateChatSession.ChatSessionStore.UpdateSessionName", i18n.ERROR_INTERNAL, err)
		}
		l.core.Srv().Tower().PublishSessionReName(protocol.GenIMTopic(sessionID), sessionID, *args.Name)
	}

	if args.IsBookmarked != nil {
		// 幂等，重复收藏无副作用
		if err := l.core.Store().ChatSessionStore().SetBookmark(l.ctx, sessionID, *args.IsBookmarked); err != nil {
			return errors.New("ChatSessionLogic.UpdateChatSession.ChatSessionStore.SetBookmark", i18n.ERROR_INTERNAL, err)
		}
	}

	return nil
}

func (l *ChatSessionLogic) DeleteChatSession(sessionID string) error {
	session, err := l.core.Store().ChatSessionStore().GetChatSession(l.ctx, "", sessionID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("ChatSessionLogic.DeleteChatSession.ChatSessionStore.GetChatSession", i18n.ERROR_INTERNAL, err)
	}
	if session == nil {
		return nil
	}

	if err := l.Identification(l.lazyRolerFromSessionID(sessionID), srv.PermissionAdmin); err != nil {
		return err
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ChatSessionStore().Delete(ctx, sessionID); err != nil {
			return errors.New("ChatSessionLogic.DeleteChatSession.ChatSessionStore.Delete", i18n.ERROR_INTERNAL, err)
		}

		if err := l.core.Store().ChatSessionContextStore().Delete(ctx, sessionID); err != nil {
			return errors.New("ChatSessionLogic.DeleteChatSession.ChatSessionContextStore.Delete", i18n.ERROR_INTERNAL, err)
		}

		if err := l.core.Store().ChatMessageStore().DeleteSessionMessage(ctx, sessionID); err != nil {
			return errors.New("ChatSessionLogic.DeleteChatSession.ChatMessageStore.DeleteSessionMessage", i18n.ERROR_INTERNAL, err)
		}

		if err := l.core.Store().MessageReportStore().DeleteSessionReports(ctx, sessionID); err != nil {
			return errors.New("ChatSessionLogic.DeleteChatSession.MessageReportStore.DeleteSessionReports", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}
