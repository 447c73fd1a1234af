// Package server exposes the read and write operations over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const ApiVersion = "v1"

// Controller handles the API endpoints.
type Controller interface {
	ReadAction(c *gin.Context)
	WriteAction(c *gin.Context)
}

func SetupRouter(controller Controller, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/read", controller.ReadAction)
	apiRouterGroup.POST("/write", controller.WriteAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
