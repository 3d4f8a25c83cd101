package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 复制和举报标记都是秒级自清除的前端回显状态
func TestMessageMarksSelfClear(t *testing.T) {
	copiedMarks.Mark("msg-marks-1")
	reportedMarks.Mark("msg-marks-1")

	assert.True(t, copiedMarks.IsMarked("msg-marks-1"))
	assert.True(t, reportedMarks.IsMarked("msg-marks-1"))

	assert.Eventually(t, func() bool {
		return !copiedMarks.IsMarked("msg-marks-1") && !reportedMarks.IsMarked("msg-marks-1")
	}, time.Second*5, time.Millisecond*100)
}
