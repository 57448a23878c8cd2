package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avolkov/skyfare/internal/domain"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, payment *domain.PaymentDetails) (*domain.Booking, error) {
	args := m.Called(ctx, id, from, to, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "b-1",
		FlightID:    "1",
		Passengers:  []domain.Passenger{{FirstName: "Ada"}},
		ContactInfo: domain.ContactInfo{Email: "ada@example.com"},
		Status:      domain.BookingStatusPending,
		TotalAmount: 650,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestService_ProcessPayment_Success(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := NewService(store, zap.NewNop(),
		WithProducer(producer, "bookings", "notifications"))

	ctx := context.Background()
	current := pendingBooking()
	want := *current
	want.Status = domain.BookingStatusConfirmed
	want.PaymentDetails = &domain.PaymentDetails{Method: "card", TransactionID: "txn", PaidAt: time.Now()}

	store.On("GetByID", ctx, "b-1").Return(current, nil).Once()
	store.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusConfirmed,
		mock.MatchedBy(func(pd *domain.PaymentDetails) bool {
			return pd != nil && pd.Method == "card" && pd.TransactionID != "" && !pd.PaidAt.IsZero()
		})).
		Return(&want, nil).Once()
	producer.On("Publish", ctx, "bookings", "b-1", mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", "b-1", mock.Anything).Return(nil).Once()

	confirmed, err := service.ProcessPayment(ctx, "b-1", PaymentInput{Method: "card"})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.PaymentDetails)
	assert.NotEmpty(t, confirmed.PaymentDetails.TransactionID)

	store.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestService_ProcessPayment_UniqueTransactionIDs(t *testing.T) {
	store := &MockBookingStore{}
	service := NewService(store, zap.NewNop())
	ctx := context.Background()

	var seen []string
	for i := 0; i < 2; i++ {
		current := pendingBooking()
		store.On("GetByID", ctx, "b-1").Return(current, nil).Once()
		store.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusConfirmed, mock.Anything).
			Run(func(args mock.Arguments) {
				pd := args.Get(4).(*domain.PaymentDetails)
				seen = append(seen, pd.TransactionID)
			}).
			Return(current, nil).Once()

		_, err := service.ProcessPayment(ctx, "b-1", PaymentInput{Method: "card"})
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1])
}

func TestService_ProcessPayment_BookingNotFound(t *testing.T) {
	store := &MockBookingStore{}
	service := NewService(store, zap.NewNop())

	ctx := context.Background()
	store.On("GetByID", ctx, "missing").Return(nil, domain.ErrBookingNotFound).Once()

	_, err := service.ProcessPayment(ctx, "missing", PaymentInput{Method: "card"})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestService_ProcessPayment_AlreadyConfirmed(t *testing.T) {
	store := &MockBookingStore{}
	service := NewService(store, zap.NewNop())

	ctx := context.Background()
	confirmed := pendingBooking()
	confirmed.Status = domain.BookingStatusConfirmed
	confirmed.PaymentDetails = &domain.PaymentDetails{Method: "card", TransactionID: "txn-1"}

	store.On("GetByID", ctx, "b-1").Return(confirmed, nil).Once()

	_, err := service.ProcessPayment(ctx, "b-1", PaymentInput{Method: "card"})

	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	// No second transaction id is ever minted.
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProcessPayment_RaceLosesToSwap(t *testing.T) {
	store := &MockBookingStore{}
	service := NewService(store, zap.NewNop())

	ctx := context.Background()
	// The read still sees pending, but another payment wins the swap.
	store.On("GetByID", ctx, "b-1").Return(pendingBooking(), nil).Once()
	store.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusConfirmed, mock.Anything).
		Return(nil, domain.ErrAlreadyProcessed).Once()

	_, err := service.ProcessPayment(ctx, "b-1", PaymentInput{Method: "card"})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestService_ProcessPayment_MethodRequired(t *testing.T) {
	service := NewService(&MockBookingStore{}, zap.NewNop())

	_, err := service.ProcessPayment(context.Background(), "b-1", PaymentInput{})
	assert.Error(t, err)
}
