package adminapi

import (
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires the health/stats/debug surface described in
// SPEC_FULL.md section 4.12 onto r.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.Use(static.Serve("/debug", debugFS()))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", h.Health)
	r.GET("/statsz", h.Statsz)
	r.GET("/debug/recent.json", h.RecentJSON)
}
