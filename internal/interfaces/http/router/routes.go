package router

import (
	"github.com/gin-gonic/gin"
	"github.com/salesquota/backend/internal/interfaces/http/handler"
)

// TargetRoutes registers the sales target endpoints
type TargetRoutes struct {
	Handler *handler.TargetHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *TargetRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	targets := rg.Group("/targets")

	targets.POST("", r.Handler.Create)
	targets.GET("", r.Handler.List)
	targets.GET("/:id", r.Handler.GetByID)
	targets.PUT("/:id", r.Handler.Update)
	targets.DELETE("/:id", r.Handler.Delete)

	targets.POST("/:id/confirm", r.Handler.Confirm)
	targets.POST("/:id/close", r.Handler.Close)
	targets.POST("/:id/reset", r.Handler.ResetToDraft)
	targets.POST("/:id/notify", r.Handler.Notify)

	targets.GET("/:id/achievement", r.Handler.GetAchievement)
	targets.GET("/:id/pacing", r.Handler.GetPacing)
	targets.GET("/:id/documents", r.Handler.ListDocuments)
}

// DocumentRoutes registers the sales document endpoints
type DocumentRoutes struct {
	Handler *handler.DocumentHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *DocumentRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")

	documents.POST("", r.Handler.Create)
	documents.GET("", r.Handler.List)
	documents.GET("/:id", r.Handler.GetByID)
	documents.PUT("/:id", r.Handler.Update)
	documents.DELETE("/:id", r.Handler.Delete)

	documents.POST("/:id/confirm", r.Handler.Confirm)
	documents.POST("/:id/post", r.Handler.Post)
	documents.POST("/:id/pay", r.Handler.MarkPaid)
	documents.POST("/:id/cancel", r.Handler.Cancel)
}

// SystemRoutes registers the system endpoints
type SystemRoutes struct {
	Handler *handler.SystemHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")

	system.GET("/info", r.Handler.GetSystemInfo)
	system.GET("/ping", r.Handler.Ping)
}
