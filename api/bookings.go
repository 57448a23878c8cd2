package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/service/booking"
)

type BookingHandler struct {
	service booking.UseCase
}

func NewBookingHandler(service booking.UseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFlightNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotEnoughSeats):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrBookingNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, found)
}
