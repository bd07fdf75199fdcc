// Package system exposes the operational surface: health, the public paypal
// client-id echo, and the admin cron endpoints.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/subkart/core/internal/pkg/cron"
	"github.com/subkart/core/internal/pkg/response"
)

func RegisterRoutes(rg *gin.RouterGroup, db *mongo.Database, sched *cron.Scheduler, paypalClientID string, protect, adminOnly gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbOK := db.Client().Ping(ctx, nil) == nil

		status := "healthy"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
		})
	})

	rg.GET("/config/paypal", func(c *gin.Context) {
		c.String(http.StatusOK, paypalClientID)
	})

	cronGroup := rg.Group("/health/cron", protect, adminOnly)
	{
		cronGroup.GET("", func(c *gin.Context) {
			items := sched.List()
			byName := make(map[string]cron.ListItem, len(items))
			for _, item := range items {
				byName[item.Name] = item
			}
			response.OK(c, byName)
		})

		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := sched.Run(c.Request.Context(), c.Param("name")); err != nil {
				response.NotFound(c, err.Error())
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})

		cronGroup.GET("/task/:name", func(c *gin.Context) {
			result, err := sched.Get(c.Param("name"))
			if err != nil {
				response.NotFound(c, err.Error())
				return
			}
			response.OK(c, result)
		})
	}
}
