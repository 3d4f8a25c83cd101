package store

import (
	"context"

	"github.com/studyhall-ai/studyhall/pkg/types"
)

type AccessTokenStore interface {
	Create(ctx context.Context, data types.AccessToken) error
	GetAccessToken(ctx context.Context, appid, token string) (*types.AccessToken, error)
	Delete(ctx context.Context, appid, token string) error
	Total(ctx context.Context, appid string) (int64, error)
}

type ChatSessionStore interface {
	Create(ctx context.Context, data types.ChatSession) error
	GetChatSession(ctx context.Context, userID, sessionID string) (*types.ChatSession, error)
	List(ctx context.Context, userID string, hideEmpty bool, page, pageSize uint64) ([]types.ChatSession, error)
	Total(ctx context.Context, userID string, hideEmpty bool) (int64, error)
	RenameOnFirstMessage(ctx context.Context, sessionID, name string) error
	UpdateSessionName(ctx context.Context, sessionID, name string) error
	SetBookmark(ctx context.Context, sessionID string, bookmarked bool) error
	IncrMessageCount(ctx context.Context, sessionID string, delta int64) error
	UpdateLatestAccessTime(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

type ChatSessionContextStore interface {
	Upsert(ctx context.Context, data types.ChatSessionContext) error
	Get(ctx context.Context, sessionID string) (*types.ChatSessionContext, error)
	Delete(ctx context.Context, sessionID string) error
}

type ChatMessageStore interface {
	Create(ctx context.Context, data *types.ChatMessage) error
	GetOne(ctx context.Context, id string) (*types.ChatMessage, error)
	ListSessionMessageUpToGivenID(ctx context.Context, sessionID, msgID string, page, pageSize uint64) ([]types.ChatMessage, error)
	GetSessionLatestMessage(ctx context.Context, sessionID string) (*types.ChatMessage, error)
	AppendMessage(ctx context.Context, id, sessionID string, appendMsg string) error
	UpdateMessageCompleteStatus(ctx context.Context, sessionID, id string, status types.MessageProgress) error
	FinishMessage(ctx context.Context, sessionID, id string, status types.MessageProgress) error
	RewriteMessage(ctx context.Context, sessionID, id string, message string, status types.MessageProgress) error
	TotalSessionMessage(ctx context.Context, sessionID string) (int64, error)
	DeleteSessionMessage(ctx context.Context, sessionID string) error
	ListTimeoutGenerating(ctx context.Context, before int64, limit uint64) ([]*types.ChatMessage, error)
}

type MessageReportStore interface {
	Create(ctx context.Context, data types.MessageReport) error
	ListByUser(ctx context.Context, userID string, page, pageSize uint64) ([]types.MessageReport, error)
	DeleteSessionReports(ctx context.Context, sessionID string) error
}

type CourseStore interface {
	Create(ctx context.Context, data types.Course) error
	Get(ctx context.Context, id string) (*types.Course, error)
	GetByCode(ctx context.Context, code string) (*types.Course, error)
	List(ctx context.Context, page, pageSize uint64) ([]types.Course, error)
	Delete(ctx context.Context, id string) error
}

type CourseSubscriptionStore interface {
	Create(ctx context.Context, data types.CourseSubscription) error
	ListUserCourses(ctx context.Context, userID string) ([]types.Course, error)
	Exist(ctx context.Context, userID, courseID string) (bool, error)
	Delete(ctx context.Context, userID, courseID string) error
}

type NoteStore interface {
	Create(ctx context.Context, data types.Note) error
	Get(ctx context.Context, userID, id string) (*types.Note, error)
	ListByUser(ctx context.Context, userID string, page, pageSize uint64) ([]types.Note, error)
	Delete(ctx context.Context, userID, id string) error
}
