package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/undiziwa/userpanel/internal/middleware"
	"github.com/undiziwa/userpanel/internal/models"
	"github.com/undiziwa/userpanel/internal/service"
	"github.com/undiziwa/userpanel/pkg/config"
	"github.com/undiziwa/userpanel/pkg/logger"
	corsmiddleware "github.com/undiziwa/userpanel/pkg/middleware/cors"
	reqidmiddleware "github.com/undiziwa/userpanel/pkg/middleware/requestid"
)

// Router assembles the directory service's HTTP surface. Permission
// updates and password resets are restricted to the management roles;
// this is the server-side enforcement the panel's display gating is
// explicitly not a substitute for.
func Router(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, users *service.UserService, metrics *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(users)

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/reset-password/confirm", userHandler.ConfirmPasswordReset)

	protected := api.Group("", middleware.JWT(auth))
	protected.GET("/users", userHandler.List)
	protected.POST("/users", userHandler.Create)

	managed := protected.Group("", middleware.RequireRoles(models.RoleGovAdmin, models.RoleSuperAdmin))
	managed.PUT("/users/:id/permission", userHandler.UpdatePermission)
	managed.PATCH("/users/:id/reset-password", userHandler.ResetPassword)

	return r
}
