package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/studyhall-ai/studyhall/pkg/register"
	"github.com/studyhall-ai/studyhall/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.CourseStore = NewCourseStore(provider)
		provider.stores.CourseSubscriptionStore = NewCourseSubscriptionStore(provider)
	})
}

type CourseStore struct {
	CommonFields
}

func NewCourseStore(provider SqlProviderAchieve) *CourseStore {
	repo := &CourseStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_COURSE)
	repo.SetAllColumns("id", "code", "name", "created_at")
	return repo
}

func (s *CourseStore) Create(ctx context.Context, data types.Course) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "code", "name", "created_at").
		Values(data.ID, data.Code, data.Name, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

func (s *CourseStore) Get(ctx context.Context, id string) (*types.Course, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Course
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *CourseStore) GetByCode(ctx context.Context, code string) (*types.Course, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"code": code})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Course
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *CourseStore) List(ctx context.Context, page, pageSize uint64) ([]types.Course, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("code ASC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Course
	if err = s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *CourseStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

type CourseSubscriptionStore struct {
	CommonFields
}

func NewCourseSubscriptionStore(provider SqlProviderAchieve) *CourseSubscriptionStore {
	repo := &CourseSubscriptionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_COURSE_SUBSCRIPTION)
	repo.SetAllColumns("user_id", "course_id", "created_at")
	return repo
}

func (s *CourseSubscriptionStore) Create(ctx context.Context, data types.CourseSubscription) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("user_id", "course_id", "created_at").
		Values(data.UserID, data.CourseID, data.CreatedAt).
		Suffix("ON CONFLICT (user_id, course_id) DO NOTHING")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

func (s *CourseSubscriptionStore) ListUserCourses(ctx context.Context, userID string) ([]types.Course, error) {
	courseTable := types.TABLE_COURSE.Name()
	query := sq.Select("c.id", "c.code", "c.name", "c.created_at").
		From(s.GetTable() + " AS sub").
		Join(courseTable + " AS c ON c.id = sub.course_id").
		Where(sq.Eq{"sub.user_id": userID}).
		OrderBy("c.code ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.Course
	if err = s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *CourseSubscriptionStore) Exist(ctx context.Context, userID, courseID string) (bool, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"user_id": userID, "course_id": courseID})
	queryString, args, err := query.ToSql()
	if err != nil {
		return false, ErrorSqlBuild(err)
	}

	var count int64
	if err = s.GetReplica(ctx).Get(&count, queryString, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CourseSubscriptionStore) Delete(ctx context.Context, userID, courseID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"user_id": userID, "course_id": courseID})
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}
