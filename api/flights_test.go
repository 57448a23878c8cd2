package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/skyfare/internal/domain"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?origin=new&destination=lon", nil)

	flights := []domain.Flight{{ID: "1", Origin: "New York", Destination: "London"}}
	mockService.On("Search", c.Request.Context(), domain.FlightFilter{Origin: "new", Destination: "lon"}).
		Return(flights, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []domain.Flight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, flights, got)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	mockService.On("GetByID", c.Request.Context(), "1").
		Return(&domain.Flight{ID: "1", FlightNumber: "AG101"}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AG101")
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/404", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}

	mockService.On("GetByID", c.Request.Context(), "404").
		Return(nil, domain.ErrFlightNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Flight not found"}`, w.Body.String())
}
