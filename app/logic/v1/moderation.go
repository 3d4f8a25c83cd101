package v1

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/studyhall-ai/studyhall/app/core"
	"github.com/studyhall-ai/studyhall/pkg/errors"
	"github.com/studyhall-ai/studyhall/pkg/i18n"
	"github.com/studyhall-ai/studyhall/pkg/marker"
	"github.com/studyhall-ai/studyhall/pkg/types"
	"github.com/studyhall-ai/studyhall/pkg/utils"
)

// 前端用这两个标记在消息上短暂展示"已复制"/"已举报"态
var (
	copiedMarks   = marker.NewRegistry(time.Second * 3)
	reportedMarks = marker.NewRegistry(time.Second * 3)
)

type ModerationLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewModerationLogic(ctx context.Context, core *core.Core) *ModerationLogic {
	return &ModerationLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *ModerationLogic) checkMessage(messageID string) (*types.ChatMessage, error) {
	msg, err := l.core.Store().ChatMessageStore().GetOne(l.ctx, messageID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ModerationLogic.checkMessage.ChatMessageStore.GetOne", i18n.ERROR_INTERNAL, err)
	}
	if msg == nil {
		return nil, errors.New("ModerationLogic.checkMessage.NotFound", i18n.ERROR_MESSAGE_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if msg.UserID != l.GetUserInfo().User {
		return nil, errors.New("ModerationLogic.checkMessage.unauth", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}
	return msg, nil
}

type CopyMessageResult struct {
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
	Copied    bool   `json:"copied"`
}

// CopyMessage 返回消息原文用于复制，仅支持已生成完毕的助教消息原样返回。
// 复制标记短时间内有效，用于前端按钮状态回显。
func (l *ModerationLogic) CopyMessage(messageID string) (*CopyMessageResult, error) {
	msg, err := l.checkMessage(messageID)
	if err != nil {
		return nil, errors.Trace("ModerationLogic.CopyMessage", err)
	}

	if msg.Role == types.USER_ROLE_ASSISTANT && msg.Complete == types.MESSAGE_PROGRESS_GENERATING {
		return nil, errors.New("ModerationLogic.CopyMessage.generating", i18n.ERROR_MESSAGE_STILL_GENERATING, nil).Code(http.StatusConflict)
	}

	copiedMarks.Mark(messageID)

	return &CopyMessageResult{
		MessageID: messageID,
		Text:      msg.Message,
		Copied:    true,
	}, nil
}

// ReportMessage 举报一条助教消息，举报原因必填
func (l *ModerationLogic) ReportMessage(messageID, reason string) (*types.MessageReport, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.New("ModerationLogic.ReportMessage.reason", i18n.ERROR_REPORT_REASON_REQUIRED, nil).Code(http.StatusBadRequest)
	}

	msg, err := l.checkMessage(messageID)
	if err != nil {
		return nil, errors.Trace("ModerationLogic.ReportMessage", err)
	}

	if msg.Role == types.USER_ROLE_ASSISTANT && msg.Complete == types.MESSAGE_PROGRESS_GENERATING {
		return nil, errors.New("ModerationLogic.ReportMessage.generating", i18n.ERROR_MESSAGE_STILL_GENERATING, nil).Code(http.StatusConflict)
	}

	report := types.MessageReport{
		ID:        utils.GenRandomID(),
		SessionID: msg.SessionID,
		MessageID: messageID,
		UserID:    l.GetUserInfo().User,
		Reason:    strings.TrimSpace(reason),
		CreatedAt: time.Now().Unix(),
	}

	if err := l.core.Store().MessageReportStore().Create(l.ctx, report); err != nil {
		return nil, errors.New("ModerationLogic.ReportMessage.MessageReportStore.Create", i18n.ERROR_INTERNAL, err)
	}

	reportedMarks.Mark(messageID)
	return &report, nil
}

// MessageMarks 返回消息当前的标记状态
func (l *ModerationLogic) MessageMarks(messageID string) (copied, reported bool) {
	return copiedMarks.IsMarked(messageID), reportedMarks.IsMarked(messageID)
}

// ListUserReports 查看当前用户提交过的举报
func (l *ModerationLogic) ListUserReports(page, pageSize uint64) ([]types.MessageReport, error) {
	list, err := l.core.Store().MessageReportStore().ListByUser(l.ctx, l.GetUserInfo().User, page, pageSize)
	if err != nil {
		return nil, errors.New("ModerationLogic.ListUserReports.MessageReportStore.ListByUser", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
