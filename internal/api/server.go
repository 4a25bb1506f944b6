// Package api provides a REST API server exposing the mining engine to
// local tooling and the demo frontend.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cryptopia/skalegasminer/internal/config"
	"github.com/cryptopia/skalegasminer/internal/logging"
	"github.com/cryptopia/skalegasminer/internal/mining"
)

// Server is the API server.
type Server struct {
	cfg     *config.Config
	session *mining.Session
	router  *gin.Engine
	server  *http.Server

	statusCacheMu   sync.RWMutex
	statusCache     *StatusResponse
	statusCacheTime time.Time
}

// StatusResponse is the /api/status response.
type StatusResponse struct {
	IsMining bool   `json:"is_mining"`
	HashRate uint64 `json:"hash_rate"`
	Now      int64  `json:"now"`
}

// MineRequest is the /api/mine request body.
type MineRequest struct {
	Amount      uint64 `json:"amount" binding:"required"`
	FromAddress string `json:"from_address" binding:"required"`
	Nonce       uint64 `json:"nonce"`
	Difficulty  uint32 `json:"difficulty" binding:"required"`
	MaxThreads  uint32 `json:"max_threads"`
}

// MineResponse is the /api/mine response, returned once the session ends.
type MineResponse struct {
	Success   bool   `json:"success"`
	Candidate string `json:"candidate,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewServer creates a new API server wrapping the given mining session.
func NewServer(cfg *config.Config, session *mining.Session) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		cfg:     cfg,
		session: session,
		router:  router,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/status", s.handleStatus)
		api.POST("/mine", s.handleMine)
		api.POST("/stop", s.handleStop)
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// Start begins the API server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.cfg.API.Bind,
		Handler: s.router,
	}

	logging.Infof("API server listening on %s", s.cfg.API.Bind)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Errorf("API server error: %v", err)
		}
	}()

	return nil
}

// Stop shuts down the API server.
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// handleStatus returns the current engine status, cached for
// cfg.API.StatsCache to keep a busy frontend from hammering the atomics.
func (s *Server) handleStatus(c *gin.Context) {
	s.statusCacheMu.RLock()
	if s.statusCache != nil && time.Since(s.statusCacheTime) < s.cfg.API.StatsCache {
		cache := s.statusCache
		s.statusCacheMu.RUnlock()
		c.JSON(200, cache)
		return
	}
	s.statusCacheMu.RUnlock()

	response := &StatusResponse{
		IsMining: s.session.IsMining(),
		HashRate: s.session.HashRate(),
		Now:      time.Now().Unix(),
	}

	s.statusCacheMu.Lock()
	s.statusCache = response
	s.statusCacheTime = time.Now()
	s.statusCacheMu.Unlock()

	c.JSON(200, response)
}

// handleMine starts a mining session and blocks the request until it
// terminates, delivering the same result the FFI entry point would.
func (s *Server) handleMine(c *gin.Context) {
	var req MineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	in := mining.Inputs{
		Amount:      req.Amount,
		FromAddress: req.FromAddress,
		Nonce:       req.Nonce,
		Difficulty:  req.Difficulty,
		MaxThreads:  req.MaxThreads,
	}

	var result MineResponse
	s.session.Mine(in, mining.RateSinkFunc(func(uint64) {}), mining.ResultSinkFunc(func(ok bool, candidate string, errMsg string) {
		result = MineResponse{Success: ok, Candidate: candidate, Error: errMsg}
	}))

	c.JSON(200, result)
}

// handleStop requests cancellation of the active session, if any.
func (s *Server) handleStop(c *gin.Context) {
	s.session.Stop()
	c.JSON(200, gin.H{"status": "ok"})
}
