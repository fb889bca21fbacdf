package router

import (
	"net/http"
	"time"

	"github.com/campuskit/admin-backend/internal/authz"
	"github.com/campuskit/admin-backend/internal/config"
	"github.com/campuskit/admin-backend/internal/handler"
	"github.com/campuskit/admin-backend/internal/middleware"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/response"
	"github.com/campuskit/admin-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth  *handler.AuthHandler
	User  *handler.UserHandler
	OpLog *handler.OpLogHandler
}

// Controller names used as registry keys. An operation key is the gin
// handler's method name on its controller.
const (
	ControllerUser = "user"
	ControllerLogs = "logs"
)

// BuildRegistry declares which permissions protect which operation. This is
// the whole declaration table: built once here, immutable afterwards.
//
// Operation declarations fully override controller ones. The logs controller
// relies on its controller-level declaration alone.
func BuildRegistry() *authz.Registry {
	return authz.NewRegistry().
		DeclareOperation(ControllerUser, "PageList", model.PermissionUser).
		DeclareOperation(ControllerUser, "GetAccounts", model.PermissionUser).
		DeclareOperation(ControllerUser, "Update", model.PermissionUser).
		DeclareOperation(ControllerUser, "Delete", model.PermissionAdmin).
		DeclareController(ControllerLogs, model.PermissionAdmin)
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Every response carries request metadata; every request carries a
	// session ID, bound or not.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.SessionCookie(cfg.SessionCookie, cfg.SessionTTL))

	guard := middleware.NewAuthChecker(BuildRegistry(), authService, log)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	userAPI := router.Group("/api/v1/user")
	{
		userAPI.POST("/login",
			authLimiter.Middleware(),
			middleware.OpLog(rdb, authService, model.BusinessTypeAuth, log),
			handlers.Auth.Login,
		)
		userAPI.GET("/logout",
			middleware.OpLog(rdb, authService, model.BusinessTypeAuth, log),
			handlers.Auth.Logout,
		)
		userAPI.GET("/me", handlers.Auth.Me)
		userAPI.POST("/register",
			authLimiter.Middleware(),
			handlers.User.Register,
		)

		userAPI.POST("/page-list",
			guard.Require(ControllerUser, "PageList"),
			middleware.OpLog(rdb, authService, model.BusinessTypeUser, log),
			handlers.User.PageList,
		)
		userAPI.GET("/accounts",
			guard.Require(ControllerUser, "GetAccounts"),
			handlers.User.GetAccounts,
		)
		userAPI.POST("/update",
			guard.Require(ControllerUser, "Update"),
			middleware.OpLog(rdb, authService, model.BusinessTypeUser, log),
			handlers.User.Update,
		)
		userAPI.DELETE("/delete",
			guard.Require(ControllerUser, "Delete"),
			middleware.OpLog(rdb, authService, model.BusinessTypeUser, log),
			handlers.User.Delete,
		)
	}

	logsAPI := router.Group("/api/v1/logs")
	{
		logsAPI.POST("/page-list",
			guard.Require(ControllerLogs, "PageList"),
			handlers.OpLog.PageList,
		)
	}

	return router
}
