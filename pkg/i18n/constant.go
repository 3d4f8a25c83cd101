package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_PERMISSION_DENIED = "error.permission.denied"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_EXIST             = "error.exist"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"
	ERROR_MORE_TAHN_MAX     = "error.moreThanMax"

	ERROR_INVALID_TOKEN   = "error.invalid.token"
	ERROR_INVALID_ACCOUNT = "error.invalid.account"

	ERROR_SESSION_BUSY             = "error.chat.session.busy"
	ERROR_SESSION_NOT_FOUND        = "error.chat.session.notfound"
	ERROR_MESSAGE_NOT_FOUND        = "error.chat.message.notfound"
	ERROR_MESSAGE_STILL_GENERATING = "error.chat.message.generating"
	ERROR_CONTEXT_TARGET_NOT_FOUND = "error.chat.context.target.notfound"
	ERROR_AI_CHAT_MODEL_NOT_FOUND  = "error.ai.chat.model.not.found"
	ERROR_AI_REQUEST_TIMEOUT       = "error.ai.request.timeout"
	ERROR_REPORT_REASON_REQUIRED   = "error.report.reason.required"
	ERROR_COURSE_NOT_SUBSCRIBED    = "error.course.not.subscribed"
)
