// Package gateway exposes the resolver over HTTP.
//
// The primary surface is a message endpoint taking an action envelope and
// answering with a success/data/error envelope. Resolution failures are
// reported inside the envelope with a 200 status; only a request the
// server cannot parse earns a 4xx.
package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmlens/filmlens/internal/provider"
)

// ActionGetMovieInfo is the only message action the gateway understands.
const ActionGetMovieInfo = "getMovieInfo"

// Message is the inbound action envelope.
type Message struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// Reply is the outbound envelope. Exactly one of Data and Error is set.
type Reply struct {
	Success bool                  `json:"success"`
	Data    *provider.MovieRecord `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// ResolverService is the slice of the resolver the gateway needs.
type ResolverService interface {
	Resolve(ctx context.Context, title string) (*provider.MovieRecord, error)
	ResetCache()
}

// Gateway routes HTTP requests to the resolver.
type Gateway struct {
	resolver ResolverService
}

// New creates a Gateway on top of resolver.
func New(resolver ResolverService) *Gateway {
	return &Gateway{resolver: resolver}
}

// Router builds the gin engine with all routes registered.
func (g *Gateway) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/api/message", g.handleMessage)
	router.GET("/api/movie-info", g.handleMovieInfo)
	router.POST("/api/cache/clear", g.handleCacheClear)
	router.GET("/healthz", g.handleHealth)

	return router
}

func (g *Gateway) handleMessage(c *gin.Context) {
	var msg Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, Reply{Error: "malformed message: " + err.Error()})
		return
	}

	switch msg.Action {
	case ActionGetMovieInfo:
		g.respond(c, msg.Title)
	default:
		c.JSON(http.StatusOK, Reply{Error: "unknown action: " + msg.Action})
	}
}

func (g *Gateway) handleMovieInfo(c *gin.Context) {
	g.respond(c, c.Query("title"))
}

func (g *Gateway) respond(c *gin.Context, title string) {
	record, err := g.resolver.Resolve(c.Request.Context(), title)
	if err != nil {
		slog.Warn("resolution failed", "title", title, "error", err)
		c.JSON(http.StatusOK, Reply{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Reply{Success: true, Data: record})
}

func (g *Gateway) handleCacheClear(c *gin.Context) {
	g.resolver.ResetCache()
	c.JSON(http.StatusOK, Reply{Success: true})
}

func (g *Gateway) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
