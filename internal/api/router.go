package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spkcd/smart-bulk-password-reset/internal/api/handlers"
	"github.com/spkcd/smart-bulk-password-reset/internal/api/middleware"
	"github.com/spkcd/smart-bulk-password-reset/internal/config"
	"github.com/spkcd/smart-bulk-password-reset/internal/email"
	"github.com/spkcd/smart-bulk-password-reset/internal/services"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, sender email.Sender) *gin.Engine {
	// Initialize services needed by API handlers
	optionService := services.NewOptionService(db)
	userService := services.NewUserService(db)
	templateService := services.NewTemplateService(optionService, cfg)
	auditService := services.NewAuditService(cfg.UploadDir)
	resetService := services.NewResetService(userService, auditService, sender, cfg)

	nonceStore := middleware.NewNonceStore(rdb, cfg.NonceTTL)

	r := gin.Default()

	// Apply global middleware first (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	nonceHandler := handlers.NewNonceHandler(nonceStore)
	templateHandler := handlers.NewTemplateHandler(templateService)
	resetHandler := handlers.NewResetHandler(userService, resetService, cfg)

	v1 := r.Group("/v1")
	{
		v1.POST("/login", authHandler.Login)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Admin routes. Every mutating endpoint additionally requires a
		// one-time nonce bound to its action.
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			admin.GET("/nonce/:action", nonceHandler.GetNonce)

			admin.GET("/users", resetHandler.GetUsersByRole)
			admin.GET("/roles", resetHandler.GetRoles)

			admin.GET("/templates", templateHandler.ListTemplates)
			admin.GET("/templates/:id", templateHandler.GetTemplate)
			admin.POST("/templates", nonceStore.Require(handlers.ActionSaveTemplate), templateHandler.CreateTemplate)
			admin.PUT("/templates/:id", nonceStore.Require(handlers.ActionUpdateTemplate), templateHandler.UpdateTemplate)
			admin.DELETE("/templates/:id", nonceStore.Require(handlers.ActionDeleteTemplate), templateHandler.DeleteTemplate)

			admin.POST("/preview", resetHandler.Preview)
			admin.POST("/test-email", nonceStore.Require(handlers.ActionSendTestEmail), resetHandler.SendTestEmail)
			admin.POST("/reset", nonceStore.Require(handlers.ActionSendReset), resetHandler.SendResetEmails)
		}
	}

	return r
}
