package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/skyfare/api"
	"github.com/avolkov/skyfare/config"
	"github.com/avolkov/skyfare/internal/bootstrap"
	"github.com/avolkov/skyfare/internal/cache"
	"github.com/avolkov/skyfare/internal/event"
	"github.com/avolkov/skyfare/internal/logger"
	"github.com/avolkov/skyfare/internal/service/booking"
	"github.com/avolkov/skyfare/internal/service/flights"
	"github.com/avolkov/skyfare/internal/service/payment"
	"github.com/avolkov/skyfare/internal/storage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flightStore, bookingStore, closeStorage, err := bootstrap.OpenStorage(ctx, cfg.Storage)
	if err != nil {
		zlog.Fatal("open storage", zap.Error(err))
	}
	defer closeStorage()

	if !cfg.Seed.Disabled {
		if err := flightStore.SeedIfEmpty(ctx, storage.SampleFlights(time.Now())); err != nil {
			zlog.Fatal("seed flights", zap.Error(err))
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache = cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
	}

	var producer *event.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = event.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
	}

	var flightCache flights.Cache
	bookingOpts := []booking.Option{}
	paymentOpts := []payment.Option{}
	if redisCache != nil {
		flightCache = redisCache
		bookingOpts = append(bookingOpts, booking.WithFlightsCache(redisCache))
	}
	if producer != nil {
		bookingOpts = append(bookingOpts, booking.WithProducer(producer, cfg.Kafka.BookingsTopic, cfg.Kafka.NotificationsTopic))
		paymentOpts = append(paymentOpts, payment.WithProducer(producer, cfg.Kafka.BookingsTopic, cfg.Kafka.NotificationsTopic))
	}

	flightService := flights.NewService(flightStore, flightCache)
	bookingService := booking.NewService(bookingStore, flightStore, zlog, bookingOpts...)
	paymentService := payment.NewService(bookingStore, zlog, paymentOpts...)

	router := api.NewRouter(flightService, bookingService, paymentService, zlog)

	zlog.Info("starting api server",
		zap.String("address", cfg.HTTP.Address),
		zap.String("storage_backend", cfg.Storage.Backend),
	)
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
