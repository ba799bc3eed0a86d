package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/rates-ingestion/internal/metrics"
)

// NewRouter wires the HTTP surface. Wrong-verb requests get a 405 with a
// JSON body rather than gin's default 404.
func NewRouter(h *Handler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Error:   "Method not allowed",
			Message: c.Request.Method + " is not supported on " + c.Request.URL.Path,
		})
	})

	r.GET("/healthz", h.Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api/v1")
	{
		rates := api.Group("/rates")
		{
			rates.POST("/upload", h.UploadRates)
			rates.GET("", h.ListRates)
			rates.GET("/export", h.ExportRates)
		}
	}
	return r
}
