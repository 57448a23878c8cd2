// Package file persists each store as a single JSON array that is rewritten
// in full on every mutation. A per-store mutex serializes the
// read-modify-write cycle, so the conditional seat decrement and status
// swap stay atomic within one process.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

const (
	flightsFile  = "flights.json"
	bookingsFile = "bookings.json"
)

type FlightStore struct {
	mu   sync.Mutex
	path string
}

func NewFlightStore(dir string) (*FlightStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FlightStore{path: filepath.Join(dir, flightsFile)}, nil
}

func (s *FlightStore) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := readJSON[domain.Flight](s.path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if storage.MatchesFilter(f, filter) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FlightStore) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := readJSON[domain.Flight](s.path)
	if err != nil {
		return nil, err
	}
	for _, f := range flights {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, domain.ErrFlightNotFound
}

func (s *FlightStore) DecrementSeats(ctx context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := readJSON[domain.Flight](s.path)
	if err != nil {
		return err
	}
	for i := range flights {
		if flights[i].ID != id {
			continue
		}
		if flights[i].AvailableSeats < count {
			return domain.ErrNotEnoughSeats
		}
		flights[i].AvailableSeats -= count
		return writeJSON(s.path, flights)
	}
	return domain.ErrFlightNotFound
}

func (s *FlightStore) SeedIfEmpty(ctx context.Context, seed []domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := readJSON[domain.Flight](s.path)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return writeJSON(s.path, seed)
}

type BookingStore struct {
	mu   sync.Mutex
	path string
}

func NewBookingStore(dir string) (*BookingStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &BookingStore{path: filepath.Join(dir, bookingsFile)}, nil
}

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := readJSON[domain.Booking](s.path)
	if err != nil {
		return err
	}
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC()
	booking.Status = domain.BookingStatusPending
	bookings = append(bookings, *booking)
	return writeJSON(s.path, bookings)
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := readJSON[domain.Booking](s.path)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, payment *domain.PaymentDetails) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := readJSON[domain.Booking](s.path)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if bookings[i].Status != from {
			return nil, domain.ErrAlreadyProcessed
		}
		bookings[i].Status = to
		if payment != nil {
			pd := *payment
			bookings[i].PaymentDetails = &pd
		}
		if err := writeJSON(s.path, bookings); err != nil {
			return nil, err
		}
		b := bookings[i]
		return &b, nil
	}
	return nil, domain.ErrBookingNotFound
}

// readJSON loads the whole array; a missing file reads as empty.
func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// writeJSON rewrites the file through a temp-and-rename so a crash mid-write
// never leaves a truncated array behind.
func writeJSON[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

var (
	_ storage.FlightStore  = (*FlightStore)(nil)
	_ storage.BookingStore = (*BookingStore)(nil)
)
