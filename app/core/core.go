package core

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/studyhall-ai/studyhall/app/core/srv"
	"github.com/studyhall-ai/studyhall/app/store/sqlstore"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores     func() *sqlstore.Provider
	redis      redis.UniversalClient
	httpClient *http.Client
	httpEngine *gin.Engine

	metrics *Metrics
	Plugins
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28,   //days
				Compress:   true, // disabled by default
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		metrics:    NewMetrics("studyhall", "core"),
		httpEngine: gin.New(),
	}

	// setup store
	setupSqlStore(core)
	setupRedis(core)

	core.srv = srv.SetupSrvs(
		srv.ApplyAI(cfg.AI),
		// web socket
		srv.ApplyTower(),
	)

	return core
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	// 执行数据库表初始化
	if err := core.stores().Install(); err != nil {
		panic(err)
	}
	fmt.Println("setupSqlStore done")
}

func setupRedis(core *Core) {
	core.redis = redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{core.cfg.Redis.Addr},
		Password:     core.cfg.Redis.Password,
		DB:           core.cfg.Redis.DB,
		PoolSize:     core.cfg.Redis.PoolSize,
		MinIdleConns: core.cfg.Redis.MinIdleConns,
		MaxRetries:   core.cfg.Redis.MaxRetries,
	})
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Redis() redis.UniversalClient {
	return s.redis
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}
