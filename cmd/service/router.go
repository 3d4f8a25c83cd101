package service

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-ai/studyhall/app/core"
	v1 "github.com/studyhall-ai/studyhall/app/logic/v1"
	"github.com/studyhall-ai/studyhall/app/response"
	"github.com/studyhall-ai/studyhall/cmd/service/handler"
	"github.com/studyhall-ai/studyhall/cmd/service/middleware"
	"github.com/studyhall-ai/studyhall/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, opts...)
	}
}

func GetUserLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			token, _ := v1.InjectTokenClaim(c)
			return key + ":" + token.User
		}, opts...)
	}
}

func GetAILimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, "ai", func(c *gin.Context) string {
			return key
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	userLimit := GetUserLimitBuilder(s.Core)
	aiLimit := GetAILimitBuilder(s.Core)

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.SetAppid(s.Core))
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		apiV1.GET("/mode", func(c *gin.Context) {
			response.APISuccess(c, s.Core.Plugins.Name())
		})
		apiV1.GET("/connect", middleware.AuthorizationFromQuery(s.Core), handler.Websocket(s.Core))

		authed := apiV1.Group("")
		authed.Use(middleware.AcceptLanguage(), middleware.Authorization(s.Core))

		token := authed.Group("/token")
		{
			token.POST("", s.CreateAccessToken)
			token.DELETE("", s.DeleteAccessToken)
		}

		chat := authed.Group("/chat")
		{
			chat.POST("", userLimit("create_session"), s.CreateChatSession)
			chat.GET("/list", s.ListChatSession)
			chat.GET("/message/id", s.GenMessageID)
			chat.GET("/:session", s.GetChatSession)
			chat.PUT("/:session", userLimit("modify_session"), s.UpdateChatSession)
			chat.DELETE("/:session", s.DeleteChatSession)
			chat.PUT("/:session/context", s.StageContext)
			chat.GET("/:session/context", s.GetContext)
			chat.DELETE("/:session/context", s.ClearContext)
			chat.POST("/:session/message", userLimit("chat_message"), aiLimit("chat_message"), s.CreateChatMessage)
			chat.POST("/:session/stop", s.StopStream)
			chat.GET("/:session/history/list", s.GetChatSessionHistory)
		}

		message := authed.Group("/message")
		{
			message.GET("/:messageid", s.GetMessage)
			message.GET("/:messageid/copy", s.CopyMessage)
			message.GET("/:messageid/marks", s.GetMessageMarks)
			message.POST("/:messageid/report", userLimit("report_message"), s.ReportMessage)
		}
		authed.GET("/reports", s.ListReports)

		course := authed.Group("/course")
		{
			course.GET("/list", s.ListCourses)
			course.GET("/subscribed", s.ListSubscribedCourses)
			course.POST("", userLimit("modify_course"), s.CreateCourse)
			course.POST("/:code/subscribe", s.SubscribeCourse)
			course.DELETE("/:code/subscribe", s.UnsubscribeCourse)
		}

		note := authed.Group("/note")
		{
			note.GET("/list", s.ListNotes)
			note.POST("", userLimit("modify_note"), s.CreateNote)
			note.DELETE("/:noteid", s.DeleteNote)
		}
	}
}
