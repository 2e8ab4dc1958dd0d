package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/garimobility/admin-dashboard/docs"
	"github.com/garimobility/admin-dashboard/internal/api/cookie"
	"github.com/garimobility/admin-dashboard/internal/api/handler"
	"github.com/garimobility/admin-dashboard/internal/api/middleware"
	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/backend"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log       zerolog.Logger
	Codec     *cookie.Codec
	Auth      ports.AuthService
	Sessions  ports.SessionProvider
	Backend   *backend.Client
	Dashboard ports.DashboardService
	Loans     ports.LoanService
	// Fallbacks is nil when demo data substitution is disabled.
	Fallbacks *ports.Fallbacks
	// Ready lists what the readiness probe pings, by name.
	Ready map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Codec)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.RouteGuard())

	// --- Dependencies ---
	bind := func(sessionID string) ports.Requester {
		return d.Backend.ForSession(sessionID, d.Sessions)
	}
	session := middleware.Session(d.Codec, d.Sessions, bind)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	repos := handler.RepositoryFactory(backend.NewRepositories)

	authHandler := handler.NewAuthHandler(d.Auth, d.Codec, d.Log)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard, d.Auth, repos)
	userHandler := handler.NewUserHandler(repos)
	fleetHandler := handler.NewFleetHandler(repos, d.Fallbacks)
	loanHandler := handler.NewLoanHandler(d.Loans, repos)
	walletHandler := handler.NewWalletHandler(repos, d.Fallbacks)

	// --- Public pages ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, middleware.DashboardPath)
	})
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.LoginForm)
	e.POST("/logout", authHandler.LogoutForm)

	// --- Auth API ---
	api := e.Group("/api/v1")
	api.POST("/auth/login/", authHandler.Login)
	api.GET("/auth/login/", authHandler.LoginMethodNotAllowed)
	api.POST("/auth/logout/", authHandler.Logout)
	api.GET("/users/me/", dashboardHandler.Me, session)

	// --- Dashboard screens ---
	dash := e.Group(middleware.DashboardPath, session)
	dash.GET("", dashboardHandler.Overview)
	dash.GET("/analytics", dashboardHandler.Analytics)
	dash.GET("/profile", dashboardHandler.Profile)

	dash.GET("/users", userHandler.List)
	dash.PUT("/users/:id", userHandler.Update, adminOnly)
	dash.POST("/users/:id/toggle", userHandler.Toggle, adminOnly)
	dash.DELETE("/users/:id", userHandler.Delete, adminOnly)

	dash.GET("/e-bikes", fleetHandler.ListBikes)
	dash.POST("/e-bikes", fleetHandler.CreateBike)
	dash.PUT("/e-bikes/:id", fleetHandler.UpdateBike)
	dash.DELETE("/e-bikes/:id", fleetHandler.DeleteBike)

	dash.GET("/categories", fleetHandler.ListCategories)
	dash.POST("/categories", fleetHandler.CreateCategory)
	dash.PUT("/categories/:id", fleetHandler.UpdateCategory)
	dash.DELETE("/categories/:id", fleetHandler.DeleteCategory)

	dash.GET("/loan-applications", loanHandler.List)
	dash.GET("/loan-applications/:id", loanHandler.Get)
	dash.PATCH("/loan-applications/:id", loanHandler.Patch)
	dash.POST("/loan-applications/:id/status", loanHandler.ChangeStatus)
	dash.DELETE("/loan-applications/:id", loanHandler.Delete)
	dash.GET("/loans", loanHandler.Applicants)

	dash.GET("/wallet-payments", walletHandler.Payments)

	e.GET("/profile", dashboardHandler.Profile, session)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger bridges Echo's request logger to zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	})
}
