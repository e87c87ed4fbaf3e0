package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeworkbot/models"
)

// StatusSource is the poll loop as seen by the status endpoints.
type StatusSource interface {
	Snapshot() models.Snapshot
}

type BotHandler struct {
	source      StatusSource
	retryPeriod time.Duration
}

func NewBotHandler(source StatusSource, retryPeriod time.Duration) *BotHandler {
	return &BotHandler{source: source, retryPeriod: retryPeriod}
}

func (h *BotHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Snapshot())
}

// Health reports unhealthy once no poll has started for two retry periods.
func (h *BotHandler) Health(c *gin.Context) {
	snap := h.source.Snapshot()
	if !snap.LastPollAt.IsZero() && time.Since(snap.LastPollAt) > 2*h.retryPeriod {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "stale", "last_poll_at": snap.LastPollAt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "last_poll_at": snap.LastPollAt})
}

func (h *BotHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Health)
	botGroup := router.Group("/bot")
	{
		botGroup.GET("/status", h.Status)
	}
}

func NewRouter(h *BotHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)
	return router
}
