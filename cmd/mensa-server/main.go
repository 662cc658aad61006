// Mensa server — HTTP API плюс встроенный реестр scheduled jobs.
//
// Один процесс обслуживает REST API столовой и держит таймеры
// ежедневного reset'а всех сайтов. При старте реестр пересобирает
// jobs из персистентных настроек сайтов.
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

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Mensa/internal/api"
	"github.com/shaiso/Mensa/internal/mq"
	"github.com/shaiso/Mensa/internal/registry"
	"github.com/shaiso/Mensa/internal/repo"
	"github.com/shaiso/Mensa/internal/reset"
	"github.com/shaiso/Mensa/internal/selection"
	"github.com/shaiso/Mensa/internal/telemetry"
)

var startTime = time.Now()

func main() {
	logger := telemetry.SetupLogger("mensa-server")
	logger.Info("starting mensa-server")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// База данных
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := repo.CreateSchema(ctx, pool); err != nil {
		logger.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	// Репозитории
	accountRepo := repo.NewAccountRepo(pool)
	orderRepo := repo.NewOrderRepo(pool)
	tokenRepo := repo.NewTokenRepo(pool)
	siteRepo := repo.NewSiteRepo(pool)
	runnerRepo := repo.NewRunnerRepo(pool)

	// Выбор runner'ов
	selector := selection.New(selection.Config{
		Runners:    runnerRepo,
		Accounts:   accountRepo,
		IsNotFound: func(err error) bool { return errors.Is(err, repo.ErrNotFound) },
		Logger:     logger,
	})

	// Reset job
	executor := reset.New(reset.Config{
		Accounts: accountRepo,
		Orders:   orderRepo,
		Tokens:   tokenRepo,
		Runners:  runnerRepo,
		Logger:   logger,
	})

	// Реестр scheduled jobs
	reg := registry.New(registry.Config{
		Job: func(ctx context.Context, siteID uuid.UUID) {
			executor.Run(ctx, siteID)
		},
		Logger: logger,
	})

	sites, err := siteRepo.GetAll(ctx)
	if err != nil {
		logger.Error("failed to load site settings", "error", err)
		os.Exit(1)
	}
	if err := reg.Bootstrap(sites); err != nil {
		logger.Error("failed to bootstrap job registry", "error", err)
		os.Exit(1)
	}
	reg.Run(ctx)

	// RabbitMQ — опционально: без брокера инстанс работает один,
	// применяя изменения расписаний только локально.
	var publisher *mq.Publisher
	conn, err := mq.NewConnection(mq.URL(), logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, schedule events disabled", "error", err)
	} else {
		defer conn.Close()
		if err := mq.SetupTopology(ctx, conn); err != nil {
			logger.Error("failed to setup mq topology", "error", err)
			os.Exit(1)
		}
		publisher = mq.NewPublisher(conn, logger)

		consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
			Queue:   mq.QueueSiteEvents,
			Handler: reg.EventHandler(),
		})
		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("consumer stopped", "error", err)
			}
		}()
	}

	// HTTP
	handler := api.NewHandler(api.Config{
		Selector:  selector,
		Registry:  reg,
		SiteRepo:  siteRepo,
		OrderRepo: orderRepo,
		Accounts:  accountRepo,
		Runners:   runnerRepo,
		Tokens:    tokenRepo,
		Publisher: publisher,
		Logger:    logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())
	handler.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("API_PORT"); v != "" {
		addr = ":" + v
	}

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Даём добежать уже начавшимся reset job'ам.
	select {
	case <-reg.Shutdown().Done():
	case <-shutdownCtx.Done():
		logger.Warn("reset jobs did not finish before timeout")
	}

	logger.Info("stopped")
}
