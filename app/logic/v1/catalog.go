package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/app/core/srv"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

// CatalogLogic 课程与笔记目录，供暂存上下文时选择
type CatalogLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewCatalogLogic(ctx context.Context, core *core.Core) *CatalogLogic {
	return &CatalogLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *CatalogLogic) ListCourses(page, pageSize uint64) ([]types.Course, error) {
	list, err := l.core.Store().CourseStore().List(l.ctx, page, pageSize)
	if err != nil {
		return nil, errors.New("CatalogLogic.ListCourses.CourseStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *CatalogLogic) ListSubscribedCourses() ([]types.Course, error) {
	list, err := l.core.Store().CourseSubscriptionStore().ListUserCourses(l.ctx, l.GetUserInfo().User)
	if err != nil {
		return nil, errors.New("CatalogLogic.ListSubscribedCourses.CourseSubscriptionStore.ListUserCourses", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

// SubscribeCourse 幂等，重复订阅无副作用
func (l *CatalogLogic) SubscribeCourse(courseCode string) error {
	course, err := l.core.Store().CourseStore().GetByCode(l.ctx, courseCode)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("CatalogLogic.SubscribeCourse.CourseStore.GetByCode", i18n.ERROR_INTERNAL, err)
	}
	if course == nil {
		return errors.New("CatalogLogic.SubscribeCourse.NotFound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	exist, err := l.core.Store().CourseSubscriptionStore().Exist(l.ctx, l.GetUserInfo().User, course.ID)
	if err != nil {
		return errors.New("CatalogLogic.SubscribeCourse.CourseSubscriptionStore.Exist", i18n.ERROR_INTERNAL, err)
	}
	if exist {
		return nil
	}

	if err := l.core.Store().CourseSubscriptionStore().Create(l.ctx, types.CourseSubscription{
		UserID:    l.GetUserInfo().User,
		CourseID:  course.ID,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		return errors.New("CatalogLogic.SubscribeCourse.CourseSubscriptionStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *CatalogLogic) UnsubscribeCourse(courseCode string) error {
	course, err := l.core.Store().CourseStore().GetByCode(l.ctx, courseCode)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("CatalogLogic.UnsubscribeCourse.CourseStore.GetByCode", i18n.ERROR_INTERNAL, err)
	}
	if course == nil {
		return nil
	}

	if err := l.core.Store().CourseSubscriptionStore().Delete(l.ctx, l.GetUserInfo().User, course.ID); err != nil {
		return errors.New("CatalogLogic.UnsubscribeCourse.CourseSubscriptionStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// CreateCourse 仅管理员可用
func (l *CatalogLogic) CreateCourse(code, name string) (*types.Course, error) {
	claims := l.GetUserInfo()
	if !l.core.Srv().RBAC().CheckPermission(claims.GetRole(), srv.PermissionTeach) {
		return nil, errors.New("CatalogLogic.CreateCourse.unauth", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	exist, err := l.core.Store().CourseStore().GetByCode(l.ctx, code)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("CatalogLogic.CreateCourse.CourseStore.GetByCode", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return nil, errors.New("CatalogLogic.CreateCourse.exist", i18n.ERROR_EXIST, nil).Code(http.StatusConflict)
	}

	course := types.Course{
		ID:        utils.GenSpecIDStr(),
		Code:      code,
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}
	if err := l.core.Store().CourseStore().Create(l.ctx, course); err != nil {
		return nil, errors.New("CatalogLogic.CreateCourse.CourseStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &course, nil
}

func (l *CatalogLogic) ListUserNotes(page, pageSize uint64) ([]types.Note, error) {
	list, err := l.core.Store().NoteStore().ListByUser(l.ctx, l.GetUserInfo().User, page, pageSize)
	if err != nil {
		return nil, errors.New("CatalogLogic.ListUserNotes.NoteStore.ListByUser", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

type CreateNoteArgs struct {
	Name       string   `json:"name" binding:"required"`
	CourseCode string   `json:"course_code"`
	Files      []string `json:"files"`
}

func (l *CatalogLogic) CreateNote(args CreateNoteArgs) (*types.Note, error) {
	note := types.Note{
		ID:         utils.GenSpecIDStr(),
		UserID:     l.GetUserInfo().User,
		Name:       args.Name,
		CourseCode: args.CourseCode,
		Files:      args.Files,
		CreatedAt:  time.Now().Unix(),
		UpdatedAt:  time.Now().Unix(),
	}

	if args.CourseCode != "" {
		course, err := l.core.Store().CourseStore().GetByCode(l.ctx, args.CourseCode)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("CatalogLogic.CreateNote.CourseStore.GetByCode", i18n.ERROR_INTERNAL, err)
		}
		if course == nil {
			return nil, errors.New("CatalogLogic.CreateNote.CourseNotFound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
		}
		note.CourseName = course.Name
	}

	if err := l.core.Store().NoteStore().Create(l.ctx, note); err != nil {
		return nil, errors.New("CatalogLogic.CreateNote.NoteStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &note, nil
}

func (l *CatalogLogic) DeleteNote(noteID string) error {
	if err := l.core.Store().NoteStore().Delete(l.ctx, l.GetUserInfo().User, noteID); err != nil {
		return errors.New("CatalogLogic.DeleteNote.NoteStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
