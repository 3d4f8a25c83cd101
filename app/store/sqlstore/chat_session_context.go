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
		provider.stores.ChatSessionContextStore = NewChatSessionContextStore(provider)
	})
}

type ChatSessionContextStore struct {
	CommonFields
}

func NewChatSessionContextStore(provider SqlProviderAchieve) *ChatSessionContextStore {
	repo := &ChatSessionContextStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CHAT_SESSION_CONTEXT)
	repo.SetAllColumns("session_id", "user_id", "contexts", "created_at", "updated_at")
	return repo
}

// Upsert replaces whatever context was staged before, one staged context row
// per session.
func (s *ChatSessionContextStore) Upsert(ctx context.Context, data types.ChatSessionContext) error {
	now := time.Now().Unix()
	if data.CreatedAt == 0 {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	query := sq.Insert(s.GetTable()).
		Columns("session_id", "user_id", "contexts", "created_at", "updated_at").
		Values(data.SessionID, data.UserID, data.Contexts.String(), data.CreatedAt, data.UpdatedAt).
		Suffix("ON CONFLICT (session_id) DO UPDATE SET contexts = EXCLUDED.contexts, updated_at = EXCLUDED.updated_at")

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

func (s *ChatSessionContextStore) Get(ctx context.Context, sessionID string) (*types.ChatSessionContext, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"session_id": sessionID})
	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ChatSessionContext
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *ChatSessionContextStore) Delete(ctx context.Context, sessionID string) error {
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
