// Package api exposes the conversion service over HTTP: one convert
// endpoint plus a health probe. The converter dependency is injected at
// construction, never reached through package state.
package api

import (
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/camreview/threads-affiliate/converter"
)

// Server wraps a Converter behind HTTP. The mutex serializes conversions:
// the backing console session handles one link at a time, so at most one
// conversion may be in flight regardless of how many requests arrive.
type Server struct {
	conv   converter.Converter
	convMu sync.Mutex
	engine *gin.Engine
}

// NewServer creates the HTTP server around the given converter.
func NewServer(conv converter.Converter) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	s := &Server{
		conv:   conv,
		engine: engine,
	}
	s.registerRoutes()

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
