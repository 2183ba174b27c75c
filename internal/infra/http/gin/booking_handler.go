package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	bookingapp "staybook/internal/app/handlers/booking"
	"staybook/internal/app/queries"
	"staybook/internal/domain/shared/dateonly"
)

// BookingHandler wires booking commands to HTTP.
type BookingHandler struct {
	Commands commands.Bus
}

type createBookingRequest struct {
	ListingID string        `json:"listing_id"`
	GuestID   string        `json:"guest_id"`
	CheckIn   dateonly.Date `json:"check_in"`
	CheckOut  dateonly.Date `json:"check_out"`
	Guests    int           `json:"guests"`
}

func (h BookingHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking handler unavailable"})
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GuestID == "" {
		req.GuestID = c.GetHeader("X-Guest-ID")
	}
	cmd := bookingapp.RequestBookingCommand{
		ListingID: req.ListingID,
		GuestID:   req.GuestID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, dto.BookingSummary](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Cancel(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking handler unavailable"})
		return
	}
	bookingID := c.Param("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking id is required"})
		return
	}
	var req cancelBookingRequest
	_ = c.ShouldBindJSON(&req)
	cmd := bookingapp.CancelBookingCommand{BookingID: bookingID, Reason: req.Reason}
	result, err := commands.Dispatch[bookingapp.CancelBookingCommand, dto.BookingSummary](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Confirm(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking handler unavailable"})
		return
	}
	cmd := bookingapp.ConfirmBookingCommand{BookingID: c.Param("id")}
	result, err := commands.Dispatch[bookingapp.ConfirmBookingCommand, dto.BookingSummary](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Decline(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking handler unavailable"})
		return
	}
	var req cancelBookingRequest
	_ = c.ShouldBindJSON(&req)
	cmd := bookingapp.DeclineBookingCommand{BookingID: c.Param("id"), Reason: req.Reason}
	result, err := commands.Dispatch[bookingapp.DeclineBookingCommand, dto.BookingSummary](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}

// MeHandler serves the caller's own resources. Identity comes from the
// X-Guest-ID header until a real auth layer fronts this service.
type MeHandler struct {
	Queries queries.Bus
}

func (h MeHandler) ListBookings(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "me handler unavailable"})
		return
	}
	guestID := c.GetHeader("X-Guest-ID")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Guest-ID header is required"})
		return
	}
	query := bookingapp.ListGuestBookingsQuery{GuestID: guestID}
	result, err := queries.Ask[bookingapp.ListGuestBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ MeHTTP = MeHandler{}
