package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/videolens/video-insight/internal/handler"
	"github.com/videolens/video-insight/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. The
// unauthenticated operations live under /v1/auth; everything issued a
// token lives under the protected /v1 group elsewhere.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only mints a new
	// access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token or a refresh_token body, so it
	// does not sit behind JWTAuth.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)
}

// API bundles the handlers mounted on the protected /v1 group.
type API struct {
	Profile   *handler.ProfileHandler
	History   *handler.HistoryHandler
	Analysis  *handler.AnalysisHandler
	Result    *handler.ResultHandler
	Sentiment *handler.SentimentHandler
}

// RegisterAPI mounts the credit-gated analysis endpoints under /v1.
// Every route requires a valid access token. The rate limiter runs
// after JWTAuth so its keys can include the user id. The response
// cache is attached per route, never group-wide: the job poll and the
// result reconciler must answer fresh on every request or clients
// would wait out the cache TTL instead of observing transitions.
func RegisterAPI(e *echo.Echo, api API, jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	if rateLimit != nil {
		v1.Use(rateLimit)
	}

	cached := []echo.MiddlewareFunc{}
	if cache != nil {
		cached = append(cached, cache)
	}

	// The balance on /me changes with every spend, so it stays
	// uncached; the history feed is append-only and tolerates the
	// short TTL.
	v1.GET("/me", api.Profile.Me)
	v1.GET("/history", api.History.List, cached...)

	v1.POST("/analyses", api.Analysis.Submit)
	v1.GET("/analyses/:id", api.Result.Get)
	v1.POST("/analyses/:id/sentiment", api.Sentiment.Analyze)
	v1.GET("/jobs/:id", api.Sentiment.GetJob)
}

// RegisterRelay mounts the workflow engine bridge under /webhooks. The
// engine calls back from another origin, so CORS stays permissive here
// and the group carries no JWT middleware.
func RegisterRelay(e *echo.Echo, r *handler.RelayHandler) {
	g := e.Group("/webhooks")
	g.Use(echomw.CORS())
	g.POST("/process-video", r.ProcessVideo)
	g.POST("/update-video-result", r.UpdateVideoResult)
}
