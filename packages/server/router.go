package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ApiVersion = "v1"

// SheetController is the set of actions the router dispatches to
type SheetController interface {
	GetCellAction(c *gin.Context)
	SetCellAction(c *gin.Context)
	ClearCellAction(c *gin.Context)
	GetValuesAction(c *gin.Context)
	GetTextsAction(c *gin.Context)
}

func SetupRouter(controller SheetController, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/cells/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/cells/:cell_id", controller.GetCellAction)
	apiRouterGroup.DELETE("/cells/:cell_id", controller.ClearCellAction)
	apiRouterGroup.GET("/sheet/values", controller.GetValuesAction)
	apiRouterGroup.GET("/sheet/texts", controller.GetTextsAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
