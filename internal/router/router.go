package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/lberndt/gasthaus/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require any middleware
// on the provided Echo instance.  Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterActions registers the guest and admin action endpoints
// under /v1.  Every action is a mutating call with a tagged
// success/error JSON result, so the rate limiter is applied to all of
// them.  There is no auth layer: the admin panel runs on the
// restaurant's internal network.
func RegisterActions(e *echo.Echo, g *handler.GuestHandler, a *handler.AdminHandler, limiter echo.MiddlewareFunc) {
    v1 := e.Group("/v1")
    if limiter != nil {
        v1.Use(limiter)
    }
    // Guest actions: reserve a table, place (or reserve-only) an order.
    v1.POST("/tables/:id/reserve", g.Reserve)
    v1.POST("/tables/:id/order", g.CreateOrder)
    // Admin actions: advance the kitchen status, clear the table.
    v1.PATCH("/tables/:id/order/status", a.UpdateOrderStatus)
    v1.POST("/tables/:id/free", a.FreeTable)
}

// RegisterPublic registers the read-only query surface used to seed
// page rendering: table snapshots and the static menu.  The menu
// response is immutable and goes through the response cache; table
// state is live and must not be cached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, menuCache echo.MiddlewareFunc) {
    e.GET("/v1/tables", p.GetTables)
    e.GET("/v1/tables/:id", p.GetTable)
    if menuCache != nil {
        e.GET("/v1/menu", p.GetMenu, menuCache)
    } else {
        e.GET("/v1/menu", p.GetMenu)
    }
}

// RegisterStream registers the per-table live-update stream.  The
// endpoint is long-lived and read-only, so neither the rate limiter
// nor the response cache applies.
func RegisterStream(e *echo.Echo, s *handler.StreamHandler) {
    e.GET("/v1/order-status", s.OrderStatus)
}
