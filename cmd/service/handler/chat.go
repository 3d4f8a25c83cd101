package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	v1 "github.com/studyhall-ai/studyhall/app/logic/v1"
	"github.com/studyhall-ai/studyhall/app/response"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

func (s *HttpSrv) GenMessageID(c *gin.Context) {
	response.APISuccess(c, s.Core.Plugins.GenMessageID())
}

type CreateChatSessionResponse struct {
	SessionID string `json:"session_id"`
}

func (s *HttpSrv) CreateChatSession(c *gin.Context) {
	logic := v1.NewChatSessionLogic(c, s.Core)

	session, err := logic.CreateChatSession()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, CreateChatSessionResponse{
		SessionID: session.ID,
	})
}

type ListChatSessionRequest struct {
	Page      uint64 `json:"page" form:"page" binding:"required"`
	PageSize  uint64 `json:"pagesize" form:"pagesize" binding:"required"`
	HideEmpty bool   `json:"hide_empty" form:"hide_empty"`
}

type ListChatSessionResponse struct {
	List  []types.ChatSession `json:"list"`
	Total int64               `json:"total"`
}

func (s *HttpSrv) ListChatSession(c *gin.Context) {
	var (
		err error
		req ListChatSessionRequest
	)

	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewChatSessionLogic(c, s.Core)
	list, total, err := logic.ListUserChatSessions(req.HideEmpty, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListChatSessionResponse{
		List:  list,
		Total: total,
	})
}

func (s *HttpSrv) GetChatSession(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.GetChatSession", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewChatSessionLogic(c, s.Core)
	session, err := logic.CheckUserChatSession(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, session)
}

type UpdateChatSessionRequest struct {
	Name         *string `json:"name"`
	IsBookmarked *bool   `json:"is_bookmarked"`
}

func (s *HttpSrv) UpdateChatSession(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.UpdateChatSession", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	var (
		err error
		req UpdateChatSessionRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewChatSessionLogic(c, s.Core)
	if err = logic.UpdateChatSession(sessionID, types.UpdateChatSessionArgs{
		Name:         req.Name,
		IsBookmarked: req.IsBookmarked,
	}); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteChatSession(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.DeleteChatSession", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewChatSessionLogic(c, s.Core)
	if err := logic.DeleteChatSession(sessionID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type StageContextRequest struct {
	Contexts []v1.StageContextArgs `json:"contexts"`
}

func (s *HttpSrv) StageContext(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.StageContext", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	var (
		err error
		req StageContextRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewChatContextLogic(c, s.Core)
	staged, err := logic.StageContexts(sessionID, req.Contexts)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, staged)
}

func (s *HttpSrv) GetContext(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.GetContext", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewChatContextLogic(c, s.Core)
	staged, err := logic.GetStagedContexts(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, staged)
}

func (s *HttpSrv) ClearContext(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.ClearContext", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewChatContextLogic(c, s.Core)
	if err := logic.ClearContexts(sessionID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type CreateChatMessageRequest struct {
	MessageID string `json:"message_id"`
	Message   string `json:"message" binding:"required"`
}

func (s *HttpSrv) CreateChatMessage(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.CreateChatMessage", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	var (
		err error
		req CreateChatMessageRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionLogic := v1.NewChatSessionLogic(c, s.Core)
	session, err := sessionLogic.CheckUserChatSession(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	chatLogic := v1.NewChatLogic(c, s.Core)
	result, err := chatLogic.NewUserMessage(session, types.CreateChatMessageArgs{
		ID:      req.MessageID,
		Message: req.Message,
		MsgType: types.MESSAGE_TYPE_TEXT,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

func (s *HttpSrv) StopStream(c *gin.Context) {
	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.StopStream", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewChatLogic(c, s.Core)
	if err := logic.StopStream(sessionID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type GetChatSessionHistoryRequest struct {
	Page           uint64 `json:"page" form:"page" binding:"required"`
	PageSize       uint64 `json:"pagesize" form:"pagesize" binding:"required"`
	AfterMessageID string `json:"after_message_id" form:"after_message_id"`
}

type GetChatSessionHistoryResponse struct {
	List  []*types.MessageDetail `json:"list"`
	Total int64                  `json:"total"`
}

func (s *HttpSrv) GetChatSessionHistory(c *gin.Context) {
	var (
		err error
		req GetChatSessionHistoryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, exist := c.Params.Get("session")
	if !exist || sessionID == "" {
		response.APIError(c, errors.New("api.GetChatSessionHistory", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	historyLogic := v1.NewHistoryLogic(c, s.Core)
	list, total, err := historyLogic.GetHistoryMessage(sessionID, req.AfterMessageID, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, GetChatSessionHistoryResponse{
		List:  lo.Reverse(list),
		Total: total,
	})
}
