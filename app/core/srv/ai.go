package srv

import (
	"net/http"

	"github.com/studyhall-ai/studyhall/pkg/ai"
	"github.com/studyhall-ai/studyhall/pkg/ai/openai"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
)

type AIConfig struct {
	Token    string `toml:"token"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

type AI struct {
	chat ai.Query
}

func SetupAI(cfg AIConfig) (*AI, error) {
	if cfg.Token == "" {
		return nil, errors.New("srv.SetupAI", i18n.ERROR_AI_CHAT_MODEL_NOT_FOUND, nil).Code(http.StatusServiceUnavailable)
	}

	return &AI{
		chat: openai.New(cfg.Token, cfg.Endpoint, ai.ModelName{ChatModel: cfg.Model}),
	}, nil
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		driver, err := SetupAI(cfg)
		if err != nil {
			panic(err)
		}
		s.ai = driver
	}
}

func (s *AI) Chat() ai.Query {
	return s.chat
}
