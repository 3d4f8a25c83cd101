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
		provider.stores.ChatMessageStore = NewChatMessageStore(provider)
	})
}

type ChatMessageStore struct {
	CommonFields
}

func NewChatMessageStore(provider SqlProviderAchieve) *ChatMessageStore {
	repo := &ChatMessageStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CHAT_MESSAGE)
	repo.SetAllColumns("id", "session_id", "user_id", "role", "message", "msg_type", "send_time", "complete", "sequence", "contexts")
	return repo
}

func (s *ChatMessageStore) Create(ctx context.Context, data *types.ChatMessage) error {
	if data.SendTime == 0 {
		data.SendTime = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "session_id", "user_id", "role", "message", "msg_type", "send_time", "complete", "sequence", "contexts").
		Values(data.ID, data.SessionID, data.UserID, data.Role, data.Message, data.MsgType, data.SendTime, data.Complete, data.Sequence, data.Contexts.String())

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

func (s *ChatMessageStore) GetOne(ctx context.Context, id string) (*types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var msg types.ChatMessage
	if err := s.GetReplica(ctx).Get(&msg, queryString, args...); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ChatMessageStore) ListSessionMessageUpToGivenID(ctx context.Context, sessionID, msgID string, page, pageSize uint64) ([]types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"session_id": sessionID}).OrderBy("sequence DESC", "id DESC")
	if msgID != "" {
		query = query.Where(sq.LtOrEq{"id": msgID})
	}

	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.ChatMessage
	if err = s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ChatMessageStore) GetSessionLatestMessage(ctx context.Context, sessionID string) (*types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"session_id": sessionID}).OrderBy("sequence DESC").Limit(1)
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var msg types.ChatMessage
	if err = s.GetReplica(ctx).Get(&msg, queryString, args...); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AppendMessage concatenates a streamed chunk onto the stored message body.
func (s *ChatMessageStore) AppendMessage(ctx context.Context, id, sessionID string, appendMsg string) error {
	query := sq.Update(s.GetTable()).Set("message", sq.Expr("message || ?", appendMsg)).Where(sq.Eq{"session_id": sessionID, "id": id})
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

func (s *ChatMessageStore) UpdateMessageCompleteStatus(ctx context.Context, sessionID, id string, status types.MessageProgress) error {
	query := sq.Update(s.GetTable()).Set("complete", status).Where(sq.Eq{"session_id": sessionID, "id": id})
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

// finishMessageQuery 结束时修剪流式拼接在首尾留下的空白字符
func finishMessageQuery(table, sessionID, id string, status types.MessageProgress) sq.UpdateBuilder {
	return sq.Update(table).
		Set("message", sq.Expr("trim(both E' \\t\\r\\n' from message)")).
		Set("complete", status).
		Where(sq.Eq{"session_id": sessionID, "id": id})
}

func (s *ChatMessageStore) FinishMessage(ctx context.Context, sessionID, id string, status types.MessageProgress) error {
	queryString, args, err := finishMessageQuery(s.GetTable(), sessionID, id, status).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

func (s *ChatMessageStore) RewriteMessage(ctx context.Context, sessionID, id string, message string, status types.MessageProgress) error {
	query := sq.Update(s.GetTable()).Set("message", message).Set("complete", status).Where(sq.Eq{"session_id": sessionID, "id": id})
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

func (s *ChatMessageStore) TotalSessionMessage(ctx context.Context, sessionID string) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"session_id": sessionID})
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

func (s *ChatMessageStore) DeleteSessionMessage(ctx context.Context, sessionID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"session_id": sessionID})
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

// ListTimeoutGenerating finds messages stuck in the generating state since
// before the given timestamp, for the background sweeper.
func (s *ChatMessageStore) ListTimeoutGenerating(ctx context.Context, before int64, limit uint64) ([]*types.ChatMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"complete": types.MESSAGE_PROGRESS_GENERATING}).
		Where(sq.Lt{"send_time": before}).
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []*types.ChatMessage
	if err = s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}
