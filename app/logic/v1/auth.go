package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

type AuthLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	return &AuthLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *AuthLogic) GetAccessTokenDetail(appid, token string) (*types.AccessToken, error) {
	data, err := l.core.Store().AccessTokenStore().GetAccessToken(l.ctx, appid, token)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.GetAccessTokenDetail.AccessTokenStore.GetAccessToken", i18n.ERROR_INTERNAL, err)
	}

	return data, nil
}

// CreateAccessToken 为用户签发一个新的访问令牌
func (l *AuthLogic) CreateAccessToken(appid, userID, role, info string, expiresAt int64) (string, error) {
	if expiresAt == 0 {
		expiresAt = time.Now().AddDate(1, 0, 0).Unix()
	}

	token := utils.RandomStr(64)
	if err := l.core.Store().AccessTokenStore().Create(l.ctx, types.AccessToken{
		Appid:     appid,
		UserID:    userID,
		Token:     token,
		Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
		Role:      role,
		Info:      info,
		CreatedAt: time.Now().Unix(),
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", errors.New("AuthLogic.CreateAccessToken.AccessTokenStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return token, nil
}

func (l *AuthLogic) RevokeAccessToken(appid, token string) error {
	if err := l.core.Store().AccessTokenStore().Delete(l.ctx, appid, token); err != nil {
		return errors.New("AuthLogic.RevokeAccessToken.AccessTokenStore.Delete", i18n.ERROR_INTERNAL, err)
	}

	if err := l.core.Store().Cache().Del(l.ctx, GenAccessTokenCacheKey(appid, token)); err != nil {
		slog.Error("failed to invalidate access token cache", slog.String("error", err.Error()))
	}
	return nil
}

// GenAccessTokenCacheKey token 缓存 key，token 原文不直接入 redis
func GenAccessTokenCacheKey(appid, token string) string {
	return fmt.Sprintf("access_token:%s:%s", appid, utils.MD5(token))
}
