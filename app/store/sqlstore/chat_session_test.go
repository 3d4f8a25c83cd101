package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-ai/studyhall/pkg/types"
)

func Test_RenameOnFirstMessageOnlyTouchesUnnamed(t *testing.T) {
	queryString, args, err := renameOnFirstMessageQuery(types.TABLE_CHAT_SESSION.Name(), "session-1", "chain rule question").ToSql()
	require.NoError(t, err)

	// 只允许给还没有名字的会话命名
	assert.Contains(t, queryString, "WHERE id = ? AND name = ?")
	assert.Equal(t, []interface{}{"chain rule question", "session-1", ""}, args)
}

func Test_ListChatSessionOrder(t *testing.T) {
	queryString, _, err := listChatSessionQuery(types.TABLE_CHAT_SESSION.Name(), []string{"id"}, "user-1", false, 1, 10).ToSql()
	require.NoError(t, err)

	assert.Contains(t, queryString, "ORDER BY is_bookmarked DESC, created_at DESC")
	assert.Contains(t, queryString, "LIMIT 10 OFFSET 0")
	assert.NotContains(t, queryString, "message_count")

	queryString, args, err := listChatSessionQuery(types.TABLE_CHAT_SESSION.Name(), []string{"id"}, "user-1", true, types.NO_PAGINATION, types.NO_PAGINATION).ToSql()
	require.NoError(t, err)

	assert.Contains(t, queryString, "message_count > ?")
	assert.NotContains(t, queryString, "LIMIT")
	assert.Contains(t, args, "user-1")
}

func Test_SetBookmarkIdempotent(t *testing.T) {
	first, firstArgs, err := setBookmarkQuery(types.TABLE_CHAT_SESSION.Name(), "session-1", true).ToSql()
	require.NoError(t, err)
	second, secondArgs, err := setBookmarkQuery(types.TABLE_CHAT_SESSION.Name(), "session-1", true).ToSql()
	require.NoError(t, err)

	// 纯赋值更新，重复执行不会翻转状态
	assert.Equal(t, first, second)
	assert.Equal(t, firstArgs, secondArgs)
	assert.Contains(t, first, "SET is_bookmarked = ?")
	assert.Equal(t, []interface{}{true, "session-1"}, firstArgs)
}
