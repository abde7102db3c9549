// Package health exposes a liveness endpoint backed by a storage ping.
package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by the database
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler answers health checks
type Handler struct {
	db Pinger
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// HealthCheck reports 503 when the database does not answer
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// NewRouter returns the gin engine serving GET /health
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", h.HealthCheck)
	return r
}

// NewServer wraps the router in an http.Server listening on addr
func NewServer(addr string, db Pinger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(NewHandler(db)),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
