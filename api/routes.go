package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/camreview/threads-affiliate/converter"
	"github.com/camreview/threads-affiliate/logger"
)

type convertRequest struct {
	ShopeeURL string `json:"shopee_url"`
}

func (s *Server) registerRoutes() {
	s.engine.POST("/api/convert", s.handleConvert)
	s.engine.GET("/api/health", s.handleHealth)
}

func (s *Server) handleConvert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, converter.Result{
			Success: false,
			Error:   "shopee_url is required",
		})
		return
	}

	shopeeURL := strings.TrimSpace(req.ShopeeURL)
	if shopeeURL == "" {
		c.JSON(http.StatusBadRequest, converter.Result{
			Success: false,
			Error:   "shopee_url must not be empty",
		})
		return
	}

	s.convMu.Lock()
	affiliateLink, err := s.conv.Convert(c.Request.Context(), shopeeURL)
	s.convMu.Unlock()

	if err != nil {
		logger.Logger.Printf("Conversion failed for %s: %v", shopeeURL, err)
		c.JSON(http.StatusBadRequest, converter.Result{
			Success:      false,
			OriginalLink: shopeeURL,
			Error:        err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, converter.Result{
		Success:       true,
		AffiliateLink: affiliateLink,
		OriginalLink:  shopeeURL,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"service_ready": s.conv != nil,
	})
}
