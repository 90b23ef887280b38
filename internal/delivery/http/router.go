package http

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radyab-gps/tracking-service/internal/delivery/http/handlers"
	authmw "github.com/radyab-gps/tracking-service/internal/delivery/http/middleware"
)

// NewRouter wires every endpoint. Everything under /api requires a bearer
// token; /api/admin additionally requires the admin role.
func NewRouter(
	jwtSecret string,
	trackingHandler *handlers.TrackingHandler,
	walletHandler *handlers.WalletHandler,
	serviceHandler *handlers.ServiceHandler,
	adminHandler *handlers.AdminHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Ingestion is keyed by device id, not by a user session.
	e.POST("/api/track/update", trackingHandler.UpdateTrack)

	api := e.Group("/api", authmw.JWTAuth(jwtSecret))

	track := api.Group("/track")
	track.POST("/stream", trackingHandler.Stream)
	track.GET("/devices", trackingHandler.VisibleDevices)
	track.POST("/devices/:id/access", trackingHandler.GiveAccess)
	track.DELETE("/devices/:id/access", trackingHandler.RevokeAccess)

	wallet := api.Group("/wallet")
	wallet.GET("/balance", walletHandler.GetBalance)
	wallet.POST("/recharge", walletHandler.SubmitRecharge)
	wallet.GET("/requests", walletHandler.GetRequests)
	wallet.POST("/transfer", walletHandler.Transfer)
	wallet.GET("/transactions", walletHandler.GetTransactions)

	services := api.Group("/services")
	services.GET("/plans", serviceHandler.GetSubPlans)
	services.GET("", serviceHandler.GetUserServices)
	services.POST("/buy", serviceHandler.BuyService)
	services.POST("/:id/renew", serviceHandler.RenewService)

	admin := api.Group("/admin", authmw.RequireAdmin())
	admin.GET("/requests/pending", adminHandler.GetPendingRequests)
	admin.POST("/requests/:id/resolve", adminHandler.ResolveRequest)

	return e
}
