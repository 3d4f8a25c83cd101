package srv

import (
	"net/http"

	"github.com/mikespook/gorbac/v2"

	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
)

const (
	// 定义角色ID
	RoleAdmin   = "role-admin"
	RoleTeacher = "role-teacher"
	RoleStudent = "role-student"

	// 定义权限ID
	PermissionAdmin = "admin"
	PermissionTeach = "teach"
	PermissionChat  = "chat"
)

func SetupRBACSrv() *RBACSrv {
	rbac := gorbac.New()

	pAdmin := gorbac.NewStdPermission(PermissionAdmin)
	pTeach := gorbac.NewStdPermission(PermissionTeach)
	pChat := gorbac.NewStdPermission(PermissionChat)

	roleAdmin := gorbac.NewStdRole(RoleAdmin)
	roleAdmin.Assign(pAdmin)

	roleTeacher := gorbac.NewStdRole(RoleTeacher)
	roleTeacher.Assign(pTeach)

	roleStudent := gorbac.NewStdRole(RoleStudent)
	roleStudent.Assign(pChat)

	rbac.Add(roleAdmin)
	rbac.Add(roleTeacher)
	rbac.Add(roleStudent)

	// 设置角色继承关系
	rbac.SetParent(RoleTeacher, RoleStudent)
	rbac.SetParent(RoleAdmin, RoleTeacher)

	return &RBACSrv{
		rbac: rbac,
	}
}

type RBACSrv struct {
	rbac *gorbac.RBAC
}

// CheckPermission 检查角色是否有某权限
func (a *RBACSrv) CheckPermission(roleID, permissionID string) bool {
	return a.rbac.IsGranted(roleID, gorbac.NewStdPermission(permissionID), nil)
}

type RoleObject interface {
	GetUser() (string, error)
}

type LazyRoler struct {
	f      func() (string, error)
	userID string
}

func (s *LazyRoler) GetUser() (string, error) {
	if s.userID == "" {
		var err error
		if s.userID, err = s.f(); err != nil {
			return "", err
		}
	}
	return s.userID, nil
}

func NewRolerWithLazyload(f func() (string, error)) *LazyRoler {
	return &LazyRoler{
		f: f,
	}
}

type RoleUser interface {
	GetRole() string
	GetUser() string
}

// 如果是管理端用户，则只检测权限，如果是C端用户，则检测资源是否属于该用户
func (a *RBACSrv) Check(user RoleUser, obj RoleObject, permissionID string) *errors.CustomizedError {
	if !a.CheckPermission(user.GetRole(), permissionID) {
		resourceUser, err := obj.GetUser()
		if err != nil {
			return errors.Trace("RBACSrv.Check", err)
		}
		if user.GetUser() != resourceUser {
			return errors.New("RBACSrv.Check.ClientUser", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
		}
	}
	return nil
}
