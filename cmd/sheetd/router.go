package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiVersion mirrors router.go's ApiVersion constant.
const apiVersion = "v1"

func setupRouter(ctl *controller) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/" + apiVersion)
	api.GET("/sheets/:sheet/cells/:pos", ctl.getCell)
	api.POST("/sheets/:sheet/cells/:pos", ctl.setCell)
	api.DELETE("/sheets/:sheet/cells/:pos", ctl.clearCell)
	api.POST("/sheets/:sheet/cells/:pos/subscribe", ctl.subscribe)
	api.GET("/sheets/:sheet", ctl.getSheet)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
