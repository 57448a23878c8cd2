package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/avolkov/skyfare/internal/middleware"
	"github.com/avolkov/skyfare/internal/service/booking"
	"github.com/avolkov/skyfare/internal/service/flights"
	"github.com/avolkov/skyfare/internal/service/payment"
)

// NewRouter assembles the REST surface under /api plus the operational
// endpoints.
func NewRouter(flightSvc flights.UseCase, bookingSvc booking.UseCase, paymentSvc payment.UseCase, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORS())

	api := router.Group("/api")
	NewFlightHandler(flightSvc).Register(api.Group("/flights"))
	NewBookingHandler(bookingSvc).Register(api.Group("/bookings"))
	NewPaymentHandler(paymentSvc).Register(api.Group("/payments"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
