package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UrielYanez/ms-users/internal/address"
	"github.com/UrielYanez/ms-users/internal/applications"
	"github.com/UrielYanez/ms-users/internal/cv"
	"github.com/UrielYanez/ms-users/internal/profiles"
	"github.com/UrielYanez/ms-users/internal/shared/config"
	"github.com/UrielYanez/ms-users/internal/shared/server/middleware"
	"github.com/UrielYanez/ms-users/internal/shared/server/respond"
)

// RouterDeps collects the handlers and shared state the router wires up.
type RouterDeps struct {
	Config             config.Config
	DB                 *sql.DB
	ProfileHandler     *profiles.Handler
	CVHandler          *cv.Handler
	ApplicationHandler *applications.Handler
	AddressHandler     *address.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", healthHandler(deps.DB))
	deps.ProfileHandler.RegisterRoutes(api)
	deps.CVHandler.RegisterRoutes(api)
	deps.ApplicationHandler.RegisterRoutes(api)
	deps.AddressHandler.RegisterRoutes(api)

	return r
}

func healthHandler(pool *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pool == nil {
			respond.OK(c, gin.H{"ok": true, "store": "memory"})
			return
		}
		var now time.Time
		if err := pool.QueryRowContext(c.Request.Context(), `SELECT NOW()`).Scan(&now); err != nil {
			respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "database unreachable", nil)
			return
		}
		respond.OK(c, gin.H{"ok": true, "currentTime": now})
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
