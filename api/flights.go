package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/service/flights"
)

type FlightHandler struct {
	service flights.UseCase
}

func NewFlightHandler(service flights.UseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := domain.FlightFilter{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flights"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrFlightNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flight"})
		return
	}
	c.JSON(http.StatusOK, flight)
}
