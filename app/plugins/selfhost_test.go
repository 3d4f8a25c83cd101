package plugins

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studyhall-ai/studyhall/pkg/utils"
)

func TestSingleLockTryLock(t *testing.T) {
	l := NewSingleLock()
	ctx, cancel := context.WithCancel(context.Background())

	ok, err := l.TryLock(ctx, "session-1")
	assert.NoError(t, err)
	assert.True(t, ok)

	// 同一个 key 在释放前不能再次获取
	ok, err = l.TryLock(ctx, "session-1")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.TryLock(ctx, "session-2")
	assert.NoError(t, err)
	assert.True(t, ok)

	cancel()
	assert.Eventually(t, func() bool {
		ctx2, cancel2 := context.WithCancel(context.Background())
		defer cancel2()
		ok, err := l.TryLock(ctx2, "session-1")
		return err == nil && ok
	}, time.Second, 10*time.Millisecond)
}

// 历史回看按 id 区间过滤，消息 id 必须随生成顺序递增
func TestGenMessageIDMonotonic(t *testing.T) {
	utils.SetupIDWorker(1)
	p := NewSelfHostMode()

	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		ids = append(ids, p.GenMessageID())
	}

	assert.True(t, sort.StringsAreSorted(ids), "message ids must be monotonically increasing, got: %v", ids[:3])
}

func TestUseLimiterConcurrent(t *testing.T) {
	p := NewSelfHostMode()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := p.UseLimiter(nil, "user-1", "chat_message")
			assert.NotNil(t, l)
		}()
	}
	wg.Wait()
}
