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
		provider.stores.MessageReportStore = NewMessageReportStore(provider)
	})
}

type MessageReportStore struct {
	CommonFields
}

func NewMessageReportStore(provider SqlProviderAchieve) *MessageReportStore {
	repo := &MessageReportStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_MESSAGE_REPORT)
	repo.SetAllColumns("id", "session_id", "message_id", "user_id", "reason", "created_at")
	return repo
}

func (s *MessageReportStore) Create(ctx context.Context, data types.MessageReport) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "session_id", "message_id", "user_id", "reason", "created_at").
		Values(data.ID, data.SessionID, data.MessageID, data.UserID, data.Reason, data.CreatedAt)

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

func (s *MessageReportStore) ListByUser(ctx context.Context, userID string, page, pageSize uint64) ([]types.MessageReport, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID}).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.MessageReport
	if err = s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *MessageReportStore) DeleteSessionReports(ctx context.Context, sessionID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"session_id": sessionID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
