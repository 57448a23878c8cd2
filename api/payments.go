package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/service/payment"
)

type PaymentHandler struct {
	service payment.UseCase
}

type processPaymentRequest struct {
	BookingID      string               `json:"bookingId"`
	PaymentDetails payment.PaymentInput `json:"paymentDetails"`
}

func NewPaymentHandler(service payment.UseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
}

func (h *PaymentHandler) create(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmed, err := h.service.ProcessPayment(c.Request.Context(), req.BookingID, req.PaymentDetails)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrAlreadyProcessed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": confirmed,
		"message": "Payment processed successfully",
	})
}
