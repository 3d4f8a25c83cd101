package v1

import (
	"context"

	"github.com/samber/lo"

	"github.com/studyhall-ai/studyhall/pkg/security"
	"github.com/studyhall-ai/studyhall/pkg/types"
)

const (
	TOKEN_CONTEXT_KEY = "__studyhall.access_token"
	LANGUAGE_KEY      = "__studyhall.accept_language"
	APPID_KEY         = "__studyhall.appid"
)

func InjectAppid(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(APPID_KEY).(string)
	return val, ok
}

// InjectTokenClaim get user/platform token claims from context
func InjectTokenClaim(ctx context.Context) (security.TokenClaims, bool) {
	val, ok := ctx.Value(TOKEN_CONTEXT_KEY).(security.TokenClaims)
	return val, ok
}

func InjectLanguage(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(LANGUAGE_KEY).(string)
	return val, ok
}

func GetContentByClientLanguage[T any](c context.Context, enRes T, cnRes T) T {
	clientLang, _ := InjectLanguage(c)
	return lo.If(clientLang == types.LANGUAGE_EN_KEY, enRes).Else(cnRes)
}
