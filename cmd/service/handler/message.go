package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/studyhall-ai/studyhall/app/logic/v1"
	"github.com/studyhall-ai/studyhall/app/response"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

func (s *HttpSrv) GetMessage(c *gin.Context) {
	messageID, exist := c.Params.Get("messageid")
	if !exist || messageID == "" {
		response.APIError(c, errors.New("api.GetMessage", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewHistoryLogic(c, s.Core)
	msg, err := logic.GetMessage(messageID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, msg)
}

func (s *HttpSrv) CopyMessage(c *gin.Context) {
	messageID, exist := c.Params.Get("messageid")
	if !exist || messageID == "" {
		response.APIError(c, errors.New("api.CopyMessage", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewModerationLogic(c, s.Core)
	result, err := logic.CopyMessage(messageID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

type ReportMessageRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (s *HttpSrv) ReportMessage(c *gin.Context) {
	messageID, exist := c.Params.Get("messageid")
	if !exist || messageID == "" {
		response.APIError(c, errors.New("api.ReportMessage", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	var (
		err error
		req ReportMessageRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewModerationLogic(c, s.Core)
	report, err := logic.ReportMessage(messageID, req.Reason)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, report)
}

type MessageMarksResponse struct {
	Copied   bool `json:"copied"`
	Reported bool `json:"reported"`
}

func (s *HttpSrv) GetMessageMarks(c *gin.Context) {
	messageID, exist := c.Params.Get("messageid")
	if !exist || messageID == "" {
		response.APIError(c, errors.New("api.GetMessageMarks", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewModerationLogic(c, s.Core)
	copied, reported := logic.MessageMarks(messageID)
	response.APISuccess(c, MessageMarksResponse{
		Copied:   copied,
		Reported: reported,
	})
}

type ListReportsRequest struct {
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required"`
}

type ListReportsResponse struct {
	List []types.MessageReport `json:"list"`
}

func (s *HttpSrv) ListReports(c *gin.Context) {
	var (
		err error
		req ListReportsRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewModerationLogic(c, s.Core)
	list, err := logic.ListUserReports(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListReportsResponse{
		List: list,
	})
}
