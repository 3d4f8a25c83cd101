package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-ai/studyhall/pkg/types"
)

func Test_FinishMessageTrimsStreamedBody(t *testing.T) {
	queryString, args, err := finishMessageQuery(types.TABLE_CHAT_MESSAGE.Name(), "session-1", "msg-1", types.MESSAGE_PROGRESS_COMPLETE).ToSql()
	require.NoError(t, err)

	assert.Contains(t, queryString, "trim(both E' \\t\\r\\n' from message)")
	assert.Contains(t, queryString, "complete = ?")
	assert.ElementsMatch(t, []interface{}{types.MESSAGE_PROGRESS_COMPLETE, "session-1", "msg-1"}, args)
}
