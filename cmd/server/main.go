// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/streadway/amqp"

	"github.com/leadloop/outreach-backend/internal/config"
	"github.com/leadloop/outreach-backend/internal/controller"
	"github.com/leadloop/outreach-backend/internal/db"
	"github.com/leadloop/outreach-backend/internal/generator"
	"github.com/leadloop/outreach-backend/internal/handler"
	"github.com/leadloop/outreach-backend/internal/kv"
	"github.com/leadloop/outreach-backend/internal/queue"
	"github.com/leadloop/outreach-backend/internal/repository"
	"github.com/leadloop/outreach-backend/internal/scoring"
	"github.com/leadloop/outreach-backend/internal/service"
	"github.com/leadloop/outreach-backend/internal/textgen"
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

	leadRepo := &repository.LeadRepository{DB: conn}
	coachRepo := &repository.CoachRepository{DB: conn}
	scheduleRepo := &repository.ScheduleRepository{DB: conn}

	var textGen textgen.Client
	if cfg.TextGen.BaseURL != "" {
		textGen = textgen.NewHTTPClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, cfg.TextGen.Model)
	} else {
		log.Println("⚠️ TEXTGEN_BASE_URL not set, using static templates and local-only scoring")
	}

	dedupe := kv.NewMemoryStore()
	go dedupe.Janitor(context.Background(), time.Hour)

	sequenceService := &service.SequenceService{
		ScheduleRepo: scheduleRepo,
		LeadRepo:     leadRepo,
		CoachRepo:    coachRepo,
		Generator:    &generator.SequenceGenerator{TextGen: textGen},
		Dedupe:       dedupe,
	}

	// Prefer RabbitMQ; fall back to the in-process queue with a local
	// subscriber so a single binary still works end to end.
	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpConn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer amqpConn.Close()

		q, err = queue.NewAMQPQueue(amqpConn)
		if err != nil {
			log.Fatal("Failed to open a channel:", err)
		}
	} else {
		log.Println("⚠️ AMQP_URL not set, using in-memory queue")
		memQueue := queue.NewInMemoryQueue()
		queue.StartLeadEventSubscriber(memQueue, sequenceService)
		q = memQueue
	}

	sequenceController := &controller.SequenceController{
		SequenceService: sequenceService,
		Queue:           q,
	}

	deliverabilityHandler := &handler.DeliverabilityHandler{
		Scorer:    &scoring.Scorer{TextGen: textGen},
		CoachRepo: coachRepo,
	}

	r := chi.NewRouter()

	// Sequence routes
	r.Post("/leads/{id}/sequences", sequenceController.GenerateSequence)
	r.Post("/leads/{id}/sequences/pause", sequenceController.PauseSequences)
	r.Post("/leads/{id}/sequences/resume", sequenceController.ResumeSequences)
	r.Post("/leads/{id}/sequences/cancel", sequenceController.CancelSequences)
	r.Get("/leads/{id}/messages", sequenceController.ListMessages)
	r.Post("/messages/{unitID}/pause", sequenceController.PauseMessage)
	r.Post("/messages/{unitID}/resume", sequenceController.ResumeMessage)
	r.Post("/messages/{unitID}/cancel", sequenceController.CancelMessage)
	r.Post("/events/lead-status", sequenceController.PublishLeadEvent)

	// Deliverability and drip routes
	r.Post("/deliverability/score", deliverabilityHandler.ScoreMessage)
	r.Post("/deliverability/quick-check", deliverabilityHandler.QuickCheck)
	r.Get("/drip/availability", deliverabilityHandler.DripAvailability)

	log.Println("🚀 Server running on", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
