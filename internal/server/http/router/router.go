package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/hotelworks/loyalty/internal/server/http/handlers"
	"github.com/hotelworks/loyalty/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BackofficeFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	ledgerHandler := handlers.NewLedgerHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")
	customers := api.Group("/customers/:id")
	customers.POST("/points/accrue", ledgerHandler.Accrue)
	customers.POST("/points/redeem", ledgerHandler.Redeem)
	customers.POST("/points/adjust", ledgerHandler.Adjust)
	customers.GET("/points", ledgerHandler.PointsInfo)
	customers.GET("/points/history", ledgerHandler.History)
	customers.GET("/balance", ledgerHandler.Balance)

	api.POST("/payments", paymentHandler.Record)

	return engine
}
