package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KoustavBera/Odoo25/internal/audit"
	auditkafka "github.com/KoustavBera/Odoo25/internal/audit/kafka"
	authservice "github.com/KoustavBera/Odoo25/internal/auth/service"
	authstore "github.com/KoustavBera/Odoo25/internal/auth/store"
	"github.com/KoustavBera/Odoo25/internal/auth/store/revocation"
	"github.com/KoustavBera/Odoo25/internal/platform/config"
	"github.com/KoustavBera/Odoo25/internal/platform/httpserver"
	"github.com/KoustavBera/Odoo25/internal/platform/logger"
	"github.com/KoustavBera/Odoo25/internal/platform/metrics"
	"github.com/KoustavBera/Odoo25/internal/platform/postgres"
	platformredis "github.com/KoustavBera/Odoo25/internal/platform/redis"
	questionservice "github.com/KoustavBera/Odoo25/internal/question/service"
	questionstore "github.com/KoustavBera/Odoo25/internal/question/store"
	"github.com/KoustavBera/Odoo25/internal/token"
	httptransport "github.com/KoustavBera/Odoo25/internal/transport/http"
)

const auditInboxSize = 256

// main wires dependencies and owns the process lifecycle. Every external
// system is optional: without Postgres, Redis, or Kafka the server runs on
// in-memory fallbacks, which is how local development works.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	m := metrics.New()

	// Stores: Postgres when configured, memory otherwise.
	var (
		users     authstore.UserStore         = authstore.NewMemoryUserStore()
		questions questionstore.QuestionStore = questionstore.NewMemoryQuestionStore()
	)
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
		userStore := authstore.NewPostgresUserStore(pool)
		if err := userStore.Migrate(ctx); err != nil {
			return err
		}
		questionStore := questionstore.NewPostgresQuestionStore(pool)
		if err := questionStore.Migrate(ctx); err != nil {
			return err
		}
		users, questions = userStore, questionStore
		log.Info("using postgres stores")
	} else {
		log.Info("DATABASE_URL not set, using in-memory stores")
	}

	// Token revocation: Redis when configured, memory otherwise.
	var trl authservice.RevocationList = revocation.NewMemoryTRL()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		trl = revocation.NewRedisTRL(redisClient.Client)
		log.Info("using redis revocation list")
	}

	// Audit trail: Kafka when brokers are configured, memory otherwise.
	var sink audit.Store = audit.NewMemoryStore()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err := auditkafka.New(ctx, cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer kafkaStore.Close()
		sink = kafkaStore
		log.Info("audit events flowing to kafka", "topic", auditkafka.Topic)
	}
	inbox := make(chan audit.Event, auditInboxSize)
	publisher := audit.NewPublisher(inbox)
	worker := audit.NewWorker(sink, inbox, log)

	tokens := token.NewService(cfg.JWTSigningKey, "stackit", cfg.SessionTTL)
	authSvc := authservice.New(users, tokens, trl, publisher, m, log)
	questionSvc := questionservice.New(questions, users, publisher, m, log)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authSvc, tokens, cfg.SessionTTL),
		Questions:    httptransport.NewQuestionHandler(questionSvc),
		Validator:    tokens,
		Revocation:   trl,
		Logger:       log,
		ClientOrigin: cfg.ClientOrigin,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
