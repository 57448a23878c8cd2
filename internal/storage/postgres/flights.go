// Package postgres backs the storage port with a pgx pool. Seat decrement
// and the booking status swap are single conditional UPDATE statements, so
// the database enforces the inventory and idempotency invariants.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

type FlightStore struct {
	db *pgxpool.Pool
}

func NewFlightStore(db *pgxpool.Pool) *FlightStore {
	return &FlightStore{db: db}
}

const flightColumns = `id, airline, flight_number, origin, destination, departure_time, arrival_time, duration, price, available_seats, date`

func (s *FlightStore) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	rows, err := s.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE ($1 = '' OR origin ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR destination ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR date = $3)
		ORDER BY seq`, filter.Origin, filter.Destination, filter.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Duration, &f.Price, &f.AvailableSeats, &f.Date); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (s *FlightStore) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := s.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Duration, &f.Price, &f.AvailableSeats, &f.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (s *FlightStore) DecrementSeats(ctx context.Context, id string, count int) error {
	res, err := s.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2 WHERE id=$1 AND available_seats >= $2`, id, count)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		// Distinguish a missing flight from an exhausted one.
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrFlightNotFound
		}
		return domain.ErrNotEnoughSeats
	}
	return nil
}

func (s *FlightStore) SeedIfEmpty(ctx context.Context, flights []domain.Flight) error {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM flights`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, f := range flights {
		if _, err := tx.Exec(ctx, `INSERT INTO flights (`+flightColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			f.ID, f.Airline, f.FlightNumber, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime, f.Duration, f.Price, f.AvailableSeats, f.Date); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

var _ storage.FlightStore = (*FlightStore)(nil)
