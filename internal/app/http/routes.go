package routes

import (
	adminapi "linkbio/internal/api/admin"
	analyticsapi "linkbio/internal/api/analytics"
	authapi "linkbio/internal/api/auth"
	blocksapi "linkbio/internal/api/blocks"
	profilesapi "linkbio/internal/api/profiles"
	publicapi "linkbio/internal/api/public"
	"linkbio/internal/api/users"
	"linkbio/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public pages and click tracking carry no body worth sanitizing
	r.GET("/u/:username", publicapi.GetPublicPage)
	r.POST("/u/:username/blocks/:id/click", publicapi.RecordClick)
	r.GET("/auth/google", authapi.GoogleStart)
	r.GET("/auth/google/callback", authapi.GoogleCallback)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/u/:username/blocks/:id/chat", publicapi.Chat)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/profile", profilesapi.GetProfile)
	auth.POST("/profile", middleware.SanitizeAndCleanInputMiddleware(), profilesapi.CreateProfile)
	auth.PUT("/profile", middleware.SanitizeAndCleanInputMiddleware(), profilesapi.UpdateProfile)

	auth.GET("/blocks", blocksapi.ListBlocks)
	auth.POST("/blocks", blocksapi.CreateBlock)
	auth.PUT("/blocks/reorder", blocksapi.ReorderBlocks)
	auth.GET("/blocks/:id", blocksapi.GetBlock)
	auth.PUT("/blocks/:id", blocksapi.UpdateBlock)
	auth.DELETE("/blocks/:id", blocksapi.DeleteBlock)
	auth.PUT("/blocks/:id/visibility", blocksapi.SetBlockVisibility)

	auth.GET("/analytics", analyticsapi.GetSummary)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/stats", adminapi.GetAdminStats)
}
