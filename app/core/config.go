package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/studyhall-ai/studyhall/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	if err := toml.Unmarshal(c.bytes, cfg); err != nil {
		return err
	}
	return nil
}

type CustomConfig[T any] struct {
	CustomConfig T `toml:"custom_config"`
}

func NewCustomConfigPayload[T any]() CustomConfig[T] {
	return CustomConfig[T]{}
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string      `toml:"addr"`
	Log      Log         `toml:"log"`
	Postgres PGConfig    `toml:"postgres"`
	Redis    RedisConfig `toml:"redis"`

	AI srv.AIConfig `toml:"ai"`

	Security Security `toml:"security"`

	Assistant AssistantConfig `toml:"assistant"`

	bytes []byte `toml:"-"`
}

type Security struct {
	EncryptKey string `toml:"encrypt_key"`
}

// AssistantConfig 助教回复相关配置
type AssistantConfig struct {
	// 回复生成超时时间(秒)，超时后由巡检任务标记为失败，默认 300
	GenerateTimeout int `toml:"generate_timeout"`
	// 单个会话历史上下文条数上限，默认 30
	HistoryLimit int `toml:"history_limit"`
}

func (c AssistantConfig) GenerateTimeoutOrDefault() int {
	if c.GenerateTimeout <= 0 {
		return 300
	}
	return c.GenerateTimeout
}

func (c AssistantConfig) HistoryLimitOrDefault() int {
	if c.HistoryLimit <= 0 {
		return 30
	}
	return c.HistoryLimit
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("STUDYHALL_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()
	c.AI.Token = os.Getenv("STUDYHALL_AI_TOKEN")
	c.AI.Endpoint = os.Getenv("STUDYHALL_AI_ENDPOINT")
	c.AI.Model = os.Getenv("STUDYHALL_AI_MODEL")
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("STUDYHALL_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	Addr     string `toml:"addr"` // host:port
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	PoolSize     int `toml:"pool_size"`
	MinIdleConns int `toml:"min_idle_conns"`
	MaxRetries   int `toml:"max_retries"`
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("STUDYHALL_REDIS_ADDR")
	r.Password = os.Getenv("STUDYHALL_REDIS_PASSWORD")
	if dbStr := os.Getenv("STUDYHALL_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("STUDYHALL_API_LOG_LEVEL")
	l.Path = os.Getenv("STUDYHALL_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
