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

type ListCoursesRequest struct {
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required"`
}

type ListCoursesResponse struct {
	List []types.Course `json:"list"`
}

func (s *HttpSrv) ListCourses(c *gin.Context) {
	var (
		err error
		req ListCoursesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	list, err := logic.ListCourses(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListCoursesResponse{
		List: list,
	})
}

func (s *HttpSrv) ListSubscribedCourses(c *gin.Context) {
	logic := v1.NewCatalogLogic(c, s.Core)
	list, err := logic.ListSubscribedCourses()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListCoursesResponse{
		List: list,
	})
}

func (s *HttpSrv) SubscribeCourse(c *gin.Context) {
	courseCode, exist := c.Params.Get("code")
	if !exist || courseCode == "" {
		response.APIError(c, errors.New("api.SubscribeCourse", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	if err := logic.SubscribeCourse(courseCode); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) UnsubscribeCourse(c *gin.Context) {
	courseCode, exist := c.Params.Get("code")
	if !exist || courseCode == "" {
		response.APIError(c, errors.New("api.UnsubscribeCourse", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	if err := logic.UnsubscribeCourse(courseCode); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type CreateCourseRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (s *HttpSrv) CreateCourse(c *gin.Context) {
	var (
		err error
		req CreateCourseRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	course, err := logic.CreateCourse(req.Code, req.Name)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, course)
}

type ListNotesRequest struct {
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required"`
}

type ListNotesResponse struct {
	List []types.Note `json:"list"`
}

func (s *HttpSrv) ListNotes(c *gin.Context) {
	var (
		err error
		req ListNotesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	list, err := logic.ListUserNotes(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, ListNotesResponse{
		List: list,
	})
}

func (s *HttpSrv) CreateNote(c *gin.Context) {
	var (
		err error
		req v1.CreateNoteArgs
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	note, err := logic.CreateNote(req)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, note)
}

func (s *HttpSrv) DeleteNote(c *gin.Context) {
	noteID, exist := c.Params.Get("noteid")
	if !exist || noteID == "" {
		response.APIError(c, errors.New("api.DeleteNote", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewCatalogLogic(c, s.Core)
	if err := logic.DeleteNote(noteID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
