package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/skyfare/config"
	"github.com/avolkov/skyfare/internal/storage"
	"github.com/avolkov/skyfare/internal/storage/file"
	"github.com/avolkov/skyfare/internal/storage/memory"
	"github.com/avolkov/skyfare/internal/storage/mongodb"
	"github.com/avolkov/skyfare/internal/storage/postgres"
)

// OpenStorage selects the persistence backend from the config and returns
// both stores plus a closer for the underlying client, if any.
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (storage.FlightStore, storage.BookingStore, func(), error) {
	switch cfg.Backend {
	case "memory":
		return memory.NewFlightStore(), memory.NewBookingStore(), func() {}, nil

	case "file":
		flightStore, err := file.NewFlightStore(cfg.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		bookingStore, err := file.NewBookingStore(cfg.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return flightStore, bookingStore, func() {}, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return postgres.NewFlightStore(pool), postgres.NewBookingStore(pool), pool.Close, nil

	case "mongodb":
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		closer := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewFlightStore(db), mongodb.NewBookingStore(db), closer, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
