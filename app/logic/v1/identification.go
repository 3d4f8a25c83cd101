package v1

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/app/core/srv"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/security"
)

type _userInfo struct {
	ctx  context.Context
	core *core.Core
	u    *security.TokenClaims
}

func (u *_userInfo) GetUserInfo() security.TokenClaims {
	return *u.u
}

func (u *_userInfo) Identification(roler srv.RoleObject, permission string) error {
	if err := u.core.Srv().RBAC().Check(u.GetUserInfo(), roler, permission); err != nil {
		return err
	}
	return nil
}

// 通过会话ID获取该会话所属的用户
func (u *_userInfo) lazyRolerFromSessionID(id string) *srv.LazyRoler {
	return srv.NewRolerWithLazyload(func() (string, error) {
		session, err := u.core.Store().ChatSessionStore().GetChatSession(u.ctx, "", id)
		if err != nil && err != sql.ErrNoRows {
			slog.Error("Failed to get userID by session", slog.String("error", errors.New("lazyRoler", "error.internal", err).Error()))
			return "", errors.New("_userInfo.RolerWithLazyload", i18n.ERROR_INTERNAL, err)
		}
		if session == nil {
			return "", nil
		}
		return session.UserID, nil
	})
}

// 通过消息ID获取该消息所属的用户
func (u *_userInfo) lazyRolerFromMessageID(id string) *srv.LazyRoler {
	return srv.NewRolerWithLazyload(func() (string, error) {
		msg, err := u.core.Store().ChatMessageStore().GetOne(u.ctx, id)
		if err != nil && err != sql.ErrNoRows {
			slog.Error("Failed to get userID by message", slog.String("error", errors.New("lazyRoler", "error.internal", err).Error()))
			return "", errors.New("_userInfo.RolerWithLazyload", i18n.ERROR_INTERNAL, err)
		}
		if msg == nil {
			return "", nil
		}
		return msg.UserID, nil
	})
}

func SetupUserInfo(ctx context.Context, core *core.Core) UserInfo {
	userInfo, ok := InjectTokenClaim(ctx)
	if !ok {
		slog.Error("Not found user in context", slog.String("component", "logic.v1.setupUserInfo"))
		userInfo = security.TokenClaims{}
	}
	return &_userInfo{
		ctx:  ctx,
		u:    &userInfo,
		core: core,
	}
}

type UserInfo interface {
	GetUserInfo() security.TokenClaims
	Identification(roler srv.RoleObject, permission string) error
	lazyRolerFromSessionID(id string) *srv.LazyRoler
	lazyRolerFromMessageID(id string) *srv.LazyRoler
}
