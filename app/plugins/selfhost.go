package plugins

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/app/core/srv"
	v1 "github.com/studyhall-ai/studyhall/app/logic/v1"
	"github.com/studyhall-ai/studyhall/pkg/safe"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

func NewSingleLock() *SingleLock {
	return &SingleLock{
		locks: make(map[string]bool),
	}
}

type SingleLock struct {
	mu    sync.Mutex
	locks map[string]bool
}

func (s *SingleLock) TryLock(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	go safe.Run(func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locks, key)
	})
	return true, nil
}

var _ core.Plugins = (*SelfHostPlugin)(nil)

func NewSelfHostMode() *SelfHostPlugin {
	return &SelfHostPlugin{
		Appid:      types.DEFAULT_APPID,
		singleLock: NewSingleLock(),
	}
}

type SelfHostPlugin struct {
	core       *core.Core
	Appid      string
	singleLock *SingleLock
}

func (s *SelfHostPlugin) Name() string {
	return "selfhost"
}

func (s *SelfHostPlugin) DefaultAppid() string {
	return s.Appid
}

func (s *SelfHostPlugin) Install(c *core.Core) error {
	s.core = c
	fmt.Println("Start initialize.")
	utils.SetupIDWorker(1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	tokenCount, err := s.core.Store().AccessTokenStore().Total(ctx, s.Appid)
	if err != nil {
		return fmt.Errorf("Initialize sql error: %w", err)
	}

	if tokenCount > 0 {
		fmt.Println("System is already initialized. Skip.")
		return nil
	}

	token := utils.RandomStr(64)
	err = s.core.Store().Transaction(ctx, func(ctx context.Context) error {
		if err := s.core.Store().AccessTokenStore().Create(ctx, types.AccessToken{
			Appid:     s.Appid,
			UserID:    utils.GenSpecIDStr(),
			Token:     token,
			Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
			Role:      srv.RoleAdmin,
			Info:      "initialize",
			CreatedAt: time.Now().Unix(),
			ExpiresAt: time.Now().AddDate(999, 0, 0).Unix(),
		}); err != nil {
			return err
		}

		// 内置示例课程，方便首次体验
		for _, course := range []types.Course{
			{ID: utils.GenSpecIDStr(), Code: "CS101", Name: "Introduction to Computer Science", CreatedAt: time.Now().Unix()},
			{ID: utils.GenSpecIDStr(), Code: "MATH201", Name: "Linear Algebra", CreatedAt: time.Now().Unix()},
		} {
			if err := s.core.Store().CourseStore().Create(ctx, course); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return err
	}

	fmt.Println("Appid:", s.Appid)
	fmt.Println("Access token:", token)
	return nil
}

func (s *SelfHostPlugin) TryLock(ctx context.Context, key string) (bool, error) {
	return s.singleLock.TryLock(ctx, key)
}

func (s *SelfHostPlugin) AIChatLogic() core.AIChatLogic {
	return v1.NewTutorAssistant(s.core)
}

func (s *SelfHostPlugin) GetChatSessionSeqID(ctx context.Context, sessionID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	latestChat, err := s.core.Store().ChatMessageStore().GetSessionLatestMessage(ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	if latestChat == nil {
		return 1, nil
	}
	return latestChat.Sequence + 1, nil
}

// 消息 id 需要单调递增，历史回看按 id 区间查询
func (s *SelfHostPlugin) GenMessageID() string {
	return utils.GenSpecIDStr()
}

var (
	limiterMu sync.Mutex
	limiter   = make(map[string]*rate.Limiter)
)

// ratelimit 代表每分钟允许的数量
func (s *SelfHostPlugin) UseLimiter(c *gin.Context, key string, method string, opts ...core.LimitOption) core.Limiter {
	cfg := &core.LimitConfig{
		Limit: 60,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	limiterMu.Lock()
	defer limiterMu.Unlock()
	l, exist := limiter[key]
	if !exist {
		limit := rate.Every(time.Minute / time.Duration(cfg.Limit))
		limiter[key] = rate.NewLimiter(limit, cfg.Limit*2)
		l = limiter[key]
	}

	return l
}
