package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/avolkov/skyfare/config"
	"github.com/avolkov/skyfare/internal/email"
	"github.com/avolkov/skyfare/internal/event"
	"github.com/avolkov/skyfare/internal/logger"
)

// The worker drains the notifications topic and turns booking events into
// (simulated) customer emails.
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

	if len(cfg.Kafka.Brokers) == 0 {
		zlog.Fatal("worker requires kafka brokers in config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := event.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(zlog)

	zlog.Info("starting notification worker",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.NotificationsTopic),
	)

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var ev event.BookingEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zlog.Warn("skipping undecodable event", zap.Error(err))
			return nil
		}
		return sender.Send(ctx, ev)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		zlog.Error("consumer stopped", zap.Error(err))
	}
}
