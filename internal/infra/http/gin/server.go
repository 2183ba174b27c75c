package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type ListingHTTP interface {
	Catalog(c *gin.Context)
}

type PricingHTTP interface {
	DisplayPrice(c *gin.Context)
	Quote(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	CheckRange(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Cancel(c *gin.Context)
	Confirm(c *gin.Context)
	Decline(c *gin.Context)
}

type MeHTTP interface {
	ListBookings(c *gin.Context)
}

type HostHTTP interface {
	UpdateCalendar(c *gin.Context)
	UpsertRule(c *gin.Context)
	DeactivateRule(c *gin.Context)
}

type Handlers struct {
	Listing      ListingHTTP
	Pricing      PricingHTTP
	Availability AvailabilityHTTP
	Booking      BookingHTTP
	Me           MeHTTP
	Host         HostHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Guest-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
	}
	if h.Pricing != nil {
		api.GET("/listings/:id/display-price", h.Pricing.DisplayPrice)
		api.GET("/listings/:id/quote", h.Pricing.Quote)
	}
	if h.Availability != nil {
		api.GET("/listings/:id/calendar", h.Availability.Calendar)
		api.GET("/listings/:id/availability", h.Availability.CheckRange)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/decline", h.Booking.Decline)
	}
	if h.Me != nil {
		meGroup := api.Group("/me")
		meGroup.GET("/bookings", h.Me.ListBookings)
	}
	if h.Host != nil {
		hostGroup := api.Group("/host/listings")
		hostGroup.PUT("/:id/calendar", h.Host.UpdateCalendar)
		hostGroup.POST("/:id/pricing-rules", h.Host.UpsertRule)
		hostGroup.DELETE("/:id/pricing-rules/:ruleID", h.Host.DeactivateRule)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
