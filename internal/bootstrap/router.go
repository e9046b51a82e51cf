package bootstrap

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/uptask/uptask-backend/config"
	httpapi "github.com/uptask/uptask-backend/internal/api/http"
	"github.com/uptask/uptask-backend/internal/api/http/middleware"
	"github.com/uptask/uptask-backend/internal/auth"
	projecthttp "github.com/uptask/uptask-backend/internal/projects/http"
	projectservice "github.com/uptask/uptask-backend/internal/projects/service"
	taskhttp "github.com/uptask/uptask-backend/internal/tasks/http"
	taskservice "github.com/uptask/uptask-backend/internal/tasks/service"
	userhttp "github.com/uptask/uptask-backend/internal/users/http"
	userservice "github.com/uptask/uptask-backend/internal/users/service"
)

// RouterDeps wires the router. A nil Tokens leaves out /api/usuarios and
// /api/auth, for deployments where tokens come from an external identity
// provider. A nil Registry disables /metrics.
type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	Stores      *Stores
	Verifier    auth.Verifier
	Tokens      userservice.TokenIssuer
	Hasher      *userservice.PasswordHasher
	CORS        config.CORSConfig
	RateLimit   config.RateLimitConfig
	Registry    *prometheus.Registry
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	log := dep.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(cors.New(corsConfig(dep.CORS)))
	r.Use(middleware.RequestID(log))

	if dep.Registry != nil {
		r.Use(middleware.NewMetrics(dep.Registry).Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Registry, promhttp.HandlerOpts{})))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Stores.Name, dep.Stores.Ping)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	gate := auth.Gate(dep.Verifier)

	var limiter *middleware.RateLimiter
	if dep.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(dep.RateLimit.RPS, dep.RateLimit.Burst)
	}

	if dep.Tokens != nil {
		accounts := api.Group("")
		if limiter != nil {
			accounts.Use(limiter.Middleware(func(c *gin.Context) string { return "ip:" + middleware.ClientIP(c) }))
		}
		users := userhttp.New(userservice.NewUserService(dep.Stores.Users, dep.Hasher, dep.Tokens), log)
		users.RegisterUsers(accounts.Group("/usuarios"))
		users.RegisterAuth(accounts.Group("/auth"), gate)
	}

	protected := api.Group("")
	protected.Use(gate)
	if limiter != nil {
		protected.Use(limiter.Middleware(func(c *gin.Context) string { return "user:" + auth.UserID(c) }))
	}

	projectSvc := projectservice.NewProjectService(dep.Stores.Projects, dep.Stores.Tasks)
	taskSvc := taskservice.NewTaskService(dep.Stores.Tasks, projectSvc)

	projecthttp.New(projectSvc, log).Register(protected.Group("/proyectos"))
	taskhttp.New(taskSvc, log).Register(protected.Group("/tareas"))

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", auth.HeaderAuthToken, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
