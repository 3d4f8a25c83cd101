package process

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/pkg/register"
	"github.com/studyhall-ai/studyhall/pkg/safe"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/types/protocol"
)

func init() {
	register.RegisterFunc[*Process](ProcessKey{}, func(p *Process) {
		if _, err := p.Cron().AddFunc("@every 1m", func() {
			safe.RunWithComponent(func() {
				SweepTimeoutMessages(p.Core())
			}, "sweeper")
		}); err != nil {
			slog.Error("Failed to register timeout sweeper", slog.String("error", err.Error()))
		}
	})
}

const sweepBatchSize = 100

// SweepTimeoutMessages 将长时间停留在生成中状态的回复标记为请求超时。
// 正常的结束路径在进程内完成，这里兜底进程重启或写库失败留下的残留记录。
func SweepTimeoutMessages(core *core.Core) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	deadline := time.Now().Add(-time.Duration(core.Cfg().Assistant.GenerateTimeoutOrDefault()) * time.Second).Unix()

	list, err := core.Store().ChatMessageStore().ListTimeoutGenerating(ctx, deadline, sweepBatchSize)
	if err != nil {
		slog.Error("Failed to list timeout generating messages", slog.String("error", err.Error()))
		return
	}

	for _, msg := range list {
		if err := core.Store().ChatMessageStore().UpdateMessageCompleteStatus(ctx, msg.SessionID, msg.ID, types.MESSAGE_PROGRESS_REQUEST_TIMEOUT); err != nil {
			slog.Error("Failed to mark message as timeout", slog.String("msg_id", msg.ID), slog.String("error", err.Error()))
			continue
		}

		if err := core.Srv().Tower().PublishStreamMessage(protocol.GenIMTopic(msg.SessionID),
			types.WS_EVENT_ASSISTANT_FAILED, protocol.NewFinalFrame(msg.ID)); err != nil {
			slog.Error("Failed to publish timeout final frame", slog.String("msg_id", msg.ID), slog.String("error", err.Error()))
		}

		slog.Warn("assistant message swept as timeout", slog.String("msg_id", msg.ID), slog.String("session_id", msg.SessionID))
	}
}
