package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ms-storefront/internal/api"
	"ms-storefront/internal/auth"
	catalogdb "ms-storefront/internal/catalog/db"
	"ms-storefront/internal/config"
	"ms-storefront/internal/kafka"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/metrics"
	"ms-storefront/internal/models"
	"ms-storefront/internal/outreach"
	"ms-storefront/internal/purchase"
	purchasedb "ms-storefront/internal/purchase/db"
	"ms-storefront/internal/purchase/qr"
	rediswrap "ms-storefront/internal/purchase/redis"
	"ms-storefront/internal/session"
	"ms-storefront/internal/sse"
	"ms-storefront/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const consumerGroup = "ms-storefront"

// publisher is what submissions and outreach publish through.
type publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting storefront initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}
	cfg := config.Load()

	ctx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// --- In-memory database: catalogs and the purchase ledger ---
	bunDB, err := catalogdb.OpenMemory()
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open in-memory database: %v", err))
	}
	defer bunDB.Close()

	events := &catalogdb.DB{Bun: bunDB}
	ledger := &purchasedb.DB{Bun: bunDB}
	if err := catalogdb.Migrate(ctx, events); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Catalog migration failed: %v", err))
	}
	if err := purchasedb.Migrate(ctx, ledger); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Ledger migration failed: %v", err))
	}
	log.Info("DATABASE", "✅ In-memory SQLite ready")

	// --- Settlement guard ---
	var guard purchase.Guard = purchase.NewLocalGuard()
	if cfg.Redis.Addr != "" {
		client, err := rediswrap.Connect(cfg.Redis.Addr, log)
		if err != nil {
			log.Warn("REDIS", fmt.Sprintf("Falling back to in-process settlement guard: %v", err))
		} else {
			defer client.Close()
			guard = rediswrap.NewRedis(client, log)
		}
	} else {
		log.Info("REDIS", "REDIS_ADDR not set, using in-process settlement guard")
	}

	sessions := session.NewStore(events, ledger, cfg.Session.TTL, log)

	// --- Messaging ---
	emitter := sse.NewConfirmationEmitter()
	var pub publisher
	var sinks []purchase.Sink

	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, cfg.Kafka.Topics.All(), log); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		pub = kafka.NewProducer(cfg.Kafka.Brokers, log)

		// Confirmations go through the broker; the consumer feeds the ledger and live streams
		topic := cfg.Kafka.Topics.PurchaseConfirmed
		sinks = []purchase.Sink{func(ctx context.Context, c models.Confirmation) error {
			return pub.Publish(ctx, topic, c.OrderID, c)
		}}

		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, topic, consumerGroup, log)
		defer consumer.Close()
		go func() {
			err := consumer.Start(ctx, func(ctx context.Context, c models.Confirmation) error {
				if !sessions.Exists(c.SessionID) {
					log.Debug("KAFKA", fmt.Sprintf("Skipping confirmation %s of ended session %s", c.OrderID, c.SessionID))
					return nil
				}
				if err := ledger.RecordPurchase(ctx, c); err != nil {
					return err
				}
				emitter.Emit(c)
				return nil
			})
			if err != nil {
				log.Error("KAFKA", fmt.Sprintf("Confirmation consumer stopped: %v", err))
			}
		}()
		log.Info("KAFKA", fmt.Sprintf("Kafka enabled with brokers %v", cfg.Kafka.Brokers))
	} else {
		pub = kafka.NewLogPublisher(log)
		topic := cfg.Kafka.Topics.PurchaseConfirmed
		sinks = []purchase.Sink{
			ledger.RecordPurchase,
			emitter.Sink,
			func(ctx context.Context, c models.Confirmation) error {
				return pub.Publish(ctx, topic, c.OrderID, c)
			},
		}
		log.Info("KAFKA", "Kafka disabled, domain events are only logged")
	}
	defer pub.Close()

	// --- Sessions and services ---
	go sessions.RunJanitor(ctx, cfg.Session.CleanupInterval)
	go metrics.CollectRuntime(ctx, 15*time.Second)

	codes := qr.NewQRGenerator(cfg.Storefront.QRSecret)

	handler := &api.Handler{
		Sessions: sessions,
		Screens:  &session.Resolver{Origin: cfg.Storefront.PublicOrigin},
		Tokens:   auth.NewTokenIssuer(cfg.Session.Secret, cfg.Session.TTL),
		Auth:     auth.NewAuthenticator(cfg.Latency.Login, cfg.Latency.Signup),
		Submissions: &submission.Service{
			Delay:     cfg.Latency.Submit,
			Publisher: pub,
			Topic:     cfg.Kafka.Topics.EventSubmitted,
			Logger:    log,
		},
		Purchases: &purchase.Engine{
			FreeDelay:  cfg.Latency.FreeSettlement,
			PaidDelay:  cfg.Latency.PaidSettlement,
			ResetDelay: cfg.Latency.PurchaseReset,
			Guard:      guard,
			Sinks:      sinks,
			QR:         codes,
			Logger:     log,
		},
		Outreach: &outreach.Service{
			ContactDelay:    cfg.Latency.Contact,
			Publisher:       pub,
			NewsletterTopic: cfg.Kafka.Topics.NewsletterSubscribe,
			ContactTopic:    cfg.Kafka.Topics.ContactReceived,
			Logger:          log,
		},
		Ledger:            ledger,
		Confirmations:     emitter,
		QR:                codes,
		HighlightInterval: cfg.Latency.HighlightInterval,
		Logger:            log,
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", api.NewRouter(handler))
	log.Info("ROUTER", "Storefront routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Storefront running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	stopBackground()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Storefront shutdown complete")
	}
}
