package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirective(t *testing.T) {
	assert.Equal(t, "Course CS101:", ChatContext{Type: CHAT_CONTEXT_TYPE_COURSE, TargetID: "CS101"}.Directive())
	assert.Equal(t, "Note 42:", ChatContext{Type: CHAT_CONTEXT_TYPE_NOTES, TargetID: "42"}.Directive())
	assert.Equal(t, "FAQ:", ChatContext{Type: CHAT_CONTEXT_TYPE_FAQ}.Directive())
	assert.Equal(t, "", ChatContext{Type: "unknown"}.Directive())
}

func TestComposeOutgoingText(t *testing.T) {
	var none ChatContexts
	assert.Equal(t, "explain week 3", none.ComposeOutgoingText("explain week 3"))

	course := ChatContexts{
		{Type: CHAT_CONTEXT_TYPE_COURSE, TargetID: "CS101"},
	}
	assert.Equal(t, "Course CS101: explain week 3", course.ComposeOutgoingText("explain week 3"))

	mixed := ChatContexts{
		{Type: CHAT_CONTEXT_TYPE_COURSE, TargetID: "MATH201"},
		{Type: CHAT_CONTEXT_TYPE_NOTES, TargetID: "n-7"},
		{Type: CHAT_CONTEXT_TYPE_FAQ},
	}
	assert.Equal(t, "Course MATH201: Note n-7: FAQ: what is rank?", mixed.ComposeOutgoingText("what is rank?"))
}

func TestSnapshotGetsFreshAttachmentID(t *testing.T) {
	c := ChatContext{
		AttachmentID: "old",
		Type:         CHAT_CONTEXT_TYPE_COURSE,
		TargetID:     "CS101",
		Label:        "Introduction to Computer Science",
	}

	snap := c.Snapshot()
	assert.NotEmpty(t, snap.AttachmentID)
	assert.NotEqual(t, c.AttachmentID, snap.AttachmentID)
	assert.Equal(t, c.Type, snap.Type)
	assert.Equal(t, c.TargetID, snap.TargetID)
	assert.Equal(t, c.Label, snap.Label)

	again := c.Snapshot()
	assert.NotEqual(t, snap.AttachmentID, again.AttachmentID)
}

func TestChatContextsScan(t *testing.T) {
	var s ChatContexts
	assert.NoError(t, s.Scan([]byte(`[{"attachment_id":"a1","type":"faq","target_id":"","label":"FAQ"}]`)))
	assert.Len(t, s, 1)
	assert.Equal(t, CHAT_CONTEXT_TYPE_FAQ, s[0].Type)

	var empty ChatContexts
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
