package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-ai/studyhall/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
