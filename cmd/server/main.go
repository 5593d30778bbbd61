package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/lexiflash/internal/api"
	"github.com/vytor/lexiflash/internal/config"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/jobs"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/notify"
	"github.com/vytor/lexiflash/internal/repository/sqlite"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(cfg.LogFormat == "text"),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("lexiflash server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s, log_format=%s", cfg.LogLevel, cfg.LogFormat)
	log.Debug("worker_count=%d, queue_size=%d", cfg.WorkerCount, cfg.QueueSize)
	log.Debug("due_batch_limit=%d", cfg.DueBatchLimit)
	log.Debug("reminder_check_interval=%s, reminder_min_interval=%s", cfg.ReminderCheckInterval, cfg.ReminderMinInterval)
	log.Debug("mastered: repetition>=%d, ease>=%.2f", cfg.MasteredMinRepetition, cfg.MasteredMinEase)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	var notifier notify.Notifier = notify.Log{}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			log.Error("telegram disabled, falling back to log reminders: %v", err)
		} else {
			notifier = tg
		}
	}

	studentRepo := sqlite.NewStudentRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	vocabRepo := sqlite.NewVocabularyRepository(database.DB)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool)

	clock := services.Clock(time.Now)
	deckService := services.NewDeckService(cardRepo, vocabRepo, queue, clock)
	reminderService := services.NewReminderService(studentRepo, cardRepo, notifier, cfg.ReminderMinInterval, clock)
	queue.Importer = deckService
	queue.Sender = reminderService

	srv := &api.Server{
		StudentService: services.NewStudentService(studentRepo),
		CardService: services.NewCardService(cardRepo, vocabRepo, services.CardOptions{
			Mastery: flashcard.MasteryThreshold{
				MinRepetition: cfg.MasteredMinRepetition,
				MinEaseFactor: cfg.MasteredMinEase,
			},
			DueLimit: cfg.DueBatchLimit,
			Clock:    clock,
		}),
		VocabularyService: services.NewVocabularyService(vocabRepo),
		DeckService:       deckService,
		DB:                database,
		RequestTimeout:    cfg.RequestTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	go scheduleReminders(ctx, queue, cfg.ReminderCheckInterval, log.WithPrefix("reminders"))

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	log.Info("lexiflash server stopped")
}

// scheduleReminders queues a reminder sweep every interval until ctx ends.
func scheduleReminders(ctx context.Context, queue jobs.JobQueue, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := queue.EnqueueDueReminders(); err != nil {
				log.Warn("skipping reminder sweep: %v", err)
			}
		}
	}
}
