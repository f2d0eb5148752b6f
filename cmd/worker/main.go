// cmd/worker/main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/streadway/amqp"

	"github.com/leadloop/outreach-backend/internal/config"
	"github.com/leadloop/outreach-backend/internal/db"
	"github.com/leadloop/outreach-backend/internal/generator"
	"github.com/leadloop/outreach-backend/internal/kv"
	"github.com/leadloop/outreach-backend/internal/queue"
	"github.com/leadloop/outreach-backend/internal/repository"
	"github.com/leadloop/outreach-backend/internal/scoring"
	"github.com/leadloop/outreach-backend/internal/service"
	"github.com/leadloop/outreach-backend/internal/textgen"
	"github.com/leadloop/outreach-backend/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	leadRepo := &repository.LeadRepository{DB: conn}
	coachRepo := &repository.CoachRepository{DB: conn}
	scheduleRepo := &repository.ScheduleRepository{DB: conn}

	var textGen textgen.Client
	if cfg.TextGen.BaseURL != "" {
		textGen = textgen.NewHTTPClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, cfg.TextGen.Model)
	}

	dedupe := kv.NewMemoryStore()
	go dedupe.Janitor(ctx, time.Hour)

	sequenceService := &service.SequenceService{
		ScheduleRepo: scheduleRepo,
		LeadRepo:     leadRepo,
		CoachRepo:    coachRepo,
		Generator:    &generator.SequenceGenerator{TextGen: textGen},
		Dedupe:       dedupe,
	}

	// Consume lead events when a broker is configured; otherwise this worker
	// only runs the dispatcher sweep.
	if cfg.AMQPURL != "" {
		amqpConn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer amqpConn.Close()

		q, err := queue.NewAMQPQueue(amqpConn)
		if err != nil {
			log.Fatal("Failed to open a channel:", err)
		}
		queue.StartLeadEventSubscriber(q, sequenceService)
		log.Println("📩 consuming", queue.TopicLeadEvents)
	} else {
		log.Println("⚠️ AMQP_URL not set, lead events are handled by the server process")
	}

	dispatcher := &service.Dispatcher{
		ScheduleRepo: scheduleRepo,
		LeadRepo:     leadRepo,
		Sender:       &transport.LogSender{FailureRate: cfg.SendFailureRate},
		Scorer:       &scoring.Scorer{TextGen: textGen},
		BatchSize:    cfg.SweepBatchSize,
		Concurrency:  cfg.SweepConcurrency,
	}

	log.Println("Worker running, sweeping for due messages...")
	dispatcher.Run(ctx, cfg.SweepInterval)
}
