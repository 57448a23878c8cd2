package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

type BookingStore struct {
	db *pgxpool.Pool
}

func NewBookingStore(db *pgxpool.Pool) *BookingStore {
	return &BookingStore{db: db}
}

const bookingColumns = `id, flight_id, flight, passengers, contact_info, status, total_amount, created_at, payment_details`

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC()
	booking.Status = domain.BookingStatusPending

	flight, err := json.Marshal(booking.Flight)
	if err != nil {
		return err
	}
	passengers, err := json.Marshal(booking.Passengers)
	if err != nil {
		return err
	}
	contact, err := json.Marshal(booking.ContactInfo)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `INSERT INTO bookings (id, flight_id, flight, passengers, contact_info, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID, booking.FlightID, flight, passengers, contact, booking.Status, booking.TotalAmount, booking.CreatedAt)
	return err
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, payment *domain.PaymentDetails) (*domain.Booking, error) {
	var paymentJSON []byte
	if payment != nil {
		data, err := json.Marshal(payment)
		if err != nil {
			return nil, err
		}
		paymentJSON = data
	}

	row := s.db.QueryRow(ctx, `UPDATE bookings
		SET status=$3, payment_details=COALESCE($4, payment_details)
		WHERE id=$1 AND status=$2
		RETURNING `+bookingColumns, id, from, to, paymentJSON)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
				return nil, err
			}
			if !exists {
				return nil, domain.ErrBookingNotFound
			}
			return nil, domain.ErrAlreadyProcessed
		}
		return nil, err
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b          domain.Booking
		flight     []byte
		passengers []byte
		contact    []byte
		payment    []byte
	)
	if err := row.Scan(&b.ID, &b.FlightID, &flight, &passengers, &contact, &b.Status, &b.TotalAmount, &b.CreatedAt, &payment); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(flight, &b.Flight); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contact, &b.ContactInfo); err != nil {
		return nil, err
	}
	if len(payment) > 0 {
		var pd domain.PaymentDetails
		if err := json.Unmarshal(payment, &pd); err != nil {
			return nil, err
		}
		b.PaymentDetails = &pd
	}
	return &b, nil
}

var _ storage.BookingStore = (*BookingStore)(nil)
