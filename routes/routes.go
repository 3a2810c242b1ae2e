package routes

import (
	"net/http"
	"strings"
	"time"

	"actionmate/handlers"
	"actionmate/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

func SetupRouter(h *handlers.Handler, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	if opts.Logger != nil {
		router.Use(middleware.AccessLog(opts.Logger.Named("access")))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "actionmate api running", "service": "healthy"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := router.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(opts.JWTSecret))
	if opts.RateLimiter != nil {
		api.Use(middleware.RateLimit(opts.RateLimiter))
	}

	api.GET("/meetings", h.ListMeetings)
	api.GET("/meetings/around", h.ListMeetingsAround)
	api.GET("/meetings/hot", h.ListHotMeetings)
	api.POST("/meetings", h.CreateMeeting)
	api.GET("/meetings/:id", h.GetMeeting)
	api.PATCH("/meetings/:id", h.UpdateMeeting)
	api.DELETE("/meetings/:id", h.CancelMeeting)

	api.POST("/meetings/:id/join", h.JoinMeeting)
	api.DELETE("/meetings/:id/join", h.CancelJoin)

	api.GET("/meetings/:id/participants", h.GetParticipants)
	api.POST("/meetings/:id/participants/:userId/approve", h.ApproveParticipant)
	api.POST("/meetings/:id/participants/:userId/reject", h.RejectParticipant)

	api.GET("/my/meetings", h.MyMeetings)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "NOT_FOUND",
				"message": "Endpoint not found",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
