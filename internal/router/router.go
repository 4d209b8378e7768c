package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/stream-shift-scheduler/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/stream-shift-scheduler/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// Handlers collects every handler the API needs so registration stays a
// single call from main.
type Handlers struct {
	Auth         *handler.AuthHandler
	Directory    *handler.DirectoryHandler
	Availability *handler.AvailabilityHandler
	Schedule     *handler.ScheduleHandler
	Requests     *handler.RequestHandler
	Manager      *handler.ManagerHandler
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the whole dashboard surface.  Three tiers of access:
// unauthenticated auth endpoints, read endpoints open to every signed-in
// role, staff self-service, and manager-only administration.  The optional
// rateLimit middleware is applied to every authenticated group.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	// Session endpoints live under /v1/auth and need no existing session.
	g := e.Group("/v1/auth")
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)

	// Everything below requires a valid access token.  The role middleware
	// rejects tokens carrying unknown roles outright.
	authed := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(model.RoleManager), string(model.RoleStaff), string(model.RoleOperations)),
	)
	if rateLimit != nil {
		authed.Use(rateLimit)
	}
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/me", h.Auth.Me)

	// Shared read surface: every dashboard view needs the roster, the shift
	// catalogue and the week-scoped snapshots.
	authed.GET("/users", h.Directory.ListUsers)
	authed.GET("/shifts", h.Directory.ListShifts)
	authed.GET("/availability", h.Availability.ListWeek)
	authed.GET("/schedule", h.Schedule.ListWeek)
	authed.GET("/requests", h.Requests.ListWeek)

	// Staff self-service: availability registration and shift requests.
	staff := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(model.RoleStaff)),
	)
	if rateLimit != nil {
		staff.Use(rateLimit)
	}
	staff.POST("/availability/toggle", h.Availability.Toggle)
	staff.POST("/availability/submit", h.Availability.Submit)
	staff.POST("/requests", h.Requests.Create)

	// Manager administration: roster, catalogue, grid mutations, scheduling
	// runs and request decisions.
	mgr := e.Group("/v1/manager",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(model.RoleManager)),
	)
	if rateLimit != nil {
		mgr.Use(rateLimit)
	}
	mgr.PUT("/users", h.Manager.UpsertUser)
	mgr.DELETE("/users/:id", h.Manager.DeleteUser)
	mgr.PUT("/shifts", h.Manager.UpsertShift)
	mgr.DELETE("/shifts/:id", h.Manager.DeleteShift)

	mgr.POST("/schedule/streamer", h.Schedule.ToggleStreamer)
	mgr.POST("/schedule/ops", h.Schedule.SetOps)
	mgr.POST("/schedule/label", h.Schedule.SetLabel)
	mgr.POST("/schedule/generate", h.Schedule.Generate)
	mgr.POST("/schedule/finalize", h.Schedule.Finalize)

	mgr.POST("/requests/:id", h.Requests.Decide)
	mgr.POST("/availability/reset", h.Availability.ResetSubmitted)
}
