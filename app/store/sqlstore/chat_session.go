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
		provider.stores.ChatSessionStore = NewChatSessionStore(provider)
	})
}

type ChatSessionStore struct {
	CommonFields
}

func NewChatSessionStore(provider SqlProviderAchieve) *ChatSessionStore {
	repo := &ChatSessionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CHAT_SESSION)
	repo.SetAllColumns("id", "user_id", "name", "message_count", "is_bookmarked", "subscribed_courses", "created_at", "latest_access_time")
	return repo
}

func (s *ChatSessionStore) Create(ctx context.Context, data types.ChatSession) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	if data.LatestAccessTime == 0 {
		data.LatestAccessTime = time.Now().Unix()
	}

	if data.SubscribedCourses == nil {
		data.SubscribedCourses = []string{}
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "name", "message_count", "is_bookmarked", "subscribed_courses", "created_at", "latest_access_time").
		Values(data.ID, data.UserID, data.Name, data.MessageCount, data.IsBookmarked, data.SubscribedCourses, data.CreatedAt, data.LatestAccessTime)

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

func (s *ChatSessionStore) GetChatSession(ctx context.Context, userID, sessionID string) (*types.ChatSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": sessionID})
	if userID != "" {
		query = query.Where(sq.Eq{"user_id": userID})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ChatSession
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func listChatSessionQuery(table string, columns []string, userID string, hideEmpty bool, page, pageSize uint64) sq.SelectBuilder {
	query := sq.Select(columns...).From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("is_bookmarked DESC", "created_at DESC")

	if hideEmpty {
		query = query.Where(sq.Gt{"message_count": 0})
	}

	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}
	return query
}

// List returns the user's sessions ordered bookmarked-first, then by
// descending creation time. hideEmpty drops sessions that never got a message.
func (s *ChatSessionStore) List(ctx context.Context, userID string, hideEmpty bool, page, pageSize uint64) ([]types.ChatSession, error) {
	queryString, args, err := listChatSessionQuery(s.GetTable(), s.GetAllColumns(), userID, hideEmpty, page, pageSize).ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ChatSession
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ChatSessionStore) Total(ctx context.Context, userID string, hideEmpty bool) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"user_id": userID})
	if hideEmpty {
		query = query.Where(sq.Gt{"message_count": 0})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var total int64
	if err = s.GetReplica(ctx).Get(&total, queryString, args...); err != nil {
		return 0, err
	}
	return total, nil
}

func renameOnFirstMessageQuery(table, sessionID, name string) sq.UpdateBuilder {
	return sq.Update(table).Where(sq.Eq{"id": sessionID, "name": ""}).Set("name", name)
}

// RenameOnFirstMessage names the session only while it is still unnamed, so
// the automatic rename fires once per session lifetime.
func (s *ChatSessionStore) RenameOnFirstMessage(ctx context.Context, sessionID, name string) error {
	queryString, args, err := renameOnFirstMessageQuery(s.GetTable(), sessionID, name).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}
	return nil
}

func (s *ChatSessionStore) UpdateSessionName(ctx context.Context, sessionID, name string) error {
	query := sq.Update(s.GetTable()).Where(sq.Eq{"id": sessionID}).Set("name", name)
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}
	return nil
}

func setBookmarkQuery(table, sessionID string, bookmarked bool) sq.UpdateBuilder {
	return sq.Update(table).Where(sq.Eq{"id": sessionID}).Set("is_bookmarked", bookmarked)
}

// SetBookmark is an idempotent set, repeated calls with the same value are
// no-ops.
func (s *ChatSessionStore) SetBookmark(ctx context.Context, sessionID string, bookmarked bool) error {
	queryString, args, err := setBookmarkQuery(s.GetTable(), sessionID, bookmarked).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}
	return nil
}

func (s *ChatSessionStore) IncrMessageCount(ctx context.Context, sessionID string, delta int64) error {
	query := sq.Update(s.GetTable()).Where(sq.Eq{"id": sessionID}).Set("message_count", sq.Expr("message_count + ?", delta))
	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}
	return nil
}

func (s *ChatSessionStore) UpdateLatestAccessTime(ctx context.Context, sessionID string) error {
	query := sq.Update(s.GetTable()).Where(sq.Eq{"id": sessionID}).Set("latest_access_time", time.Now().Unix())

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}
	return nil
}

func (s *ChatSessionStore) Delete(ctx context.Context, sessionID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": sessionID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}
	return nil
}
