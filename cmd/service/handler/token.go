package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/studyhall-ai/studyhall/app/logic/v1"
	"github.com/studyhall-ai/studyhall/app/response"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

type CreateAccessTokenRequest struct {
	Info      string `json:"info"`
	ExpiresAt int64  `json:"expires_at"`
}

type CreateAccessTokenResponse struct {
	Token string `json:"token"`
}

func (s *HttpSrv) CreateAccessToken(c *gin.Context) {
	var (
		err error
		req CreateAccessTokenRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	claims, _ := v1.InjectTokenClaim(c)
	appid, _ := v1.InjectAppid(c)

	logic := v1.NewAuthLogic(c, s.Core)
	token, err := logic.CreateAccessToken(appid, claims.User, claims.GetRole(), req.Info, req.ExpiresAt)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, CreateAccessTokenResponse{
		Token: token,
	})
}

type DeleteAccessTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (s *HttpSrv) DeleteAccessToken(c *gin.Context) {
	var (
		err error
		req DeleteAccessTokenRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	appid, _ := v1.InjectAppid(c)

	logic := v1.NewAuthLogic(c, s.Core)
	if err = logic.RevokeAccessToken(appid, req.Token); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
