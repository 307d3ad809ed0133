package main

import (
	"context"
	"os/signal"
	"syscall"

	"college_assistant_bot/internal/app"
	"college_assistant_bot/internal/app/session"
	"college_assistant_bot/internal/infra/config"
	idb "college_assistant_bot/internal/infra/database"
	"college_assistant_bot/internal/infra/events"
	"college_assistant_bot/internal/infra/logger"
	"college_assistant_bot/internal/infra/scheduler"
	"college_assistant_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"session_ttl": cfg.SessionTTL,
		"redis":       cfg.RedisAddr != "",
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	if err := idb.RunMigrations(db.DB, logger.Component("migrate")); err != nil {
		mainLogger.WithError(err).Fatal("Could not apply database migrations")
	}

	// Initialize Repositories
	studentRepo := idb.NewPostgresStudentRepository(db)
	groupRepo := idb.NewPostgresGroupRepository(db)
	teacherRepo := idb.NewPostgresTeacherRepository(db)
	newsRepo := idb.NewPostgresNewsRepository(db)

	var journal app.AuditJournal = events.NewLogJournal(logger.Component("audit"))
	if cfg.RedisAddr != "" {
		rdb, err := events.NewRedisClient(events.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to Redis")
		}
		defer rdb.Close()
		journal = events.NewRedisJournal(rdb)
		mainLogger.WithField("key", events.AuditListKey).Info("Audit events go to Redis")
	}

	adminService, err := app.NewAdminService(newsRepo, adminSecret(cfg))
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create admin service")
	}

	sessions := session.NewCache(session.WithTTL(cfg.SessionTTL))

	router, err := app.NewRouter(app.RouterDeps{
		Students:     studentRepo,
		Groups:       groupRepo,
		Teachers:     teacherRepo,
		News:         newsRepo,
		Admin:        adminService,
		Sessions:     sessions,
		Journal:      journal,
		Logger:       logger.Component("router"),
		StoreTimeout: cfg.StoreTimeout,
		AuditTimeout: cfg.AuditTimeout,
		NewsLimit:    cfg.NewsLimit,
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create router")
	}

	sweeper := scheduler.NewSessionSweeper(sessions, logger.Component("sweeper"), cfg.SessionSweepSpec)
	if err := sweeper.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start session sweeper")
	}

	// Initialize Telegram Bot
	telebotLogger := logger.Component("telebot")
	pref := telebot.Settings{
		Token:       cfg.TelegramToken,
		Poller:      &telebot.LongPoller{Timeout: cfg.PollTimeout},
		Synchronous: true, // updates are fanned out per caller by the gateway dispatcher
		OnError: func(err error, c telebot.Context) {
			entry := telebotLogger.WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telegram update failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	adapter := telegram.NewTelebotAdapter(bot)
	dispatcher := telegram.RegisterHandlers(context.WithoutCancel(ctx), bot, router, router.Commands(), adapter, logrus.NewEntry(logger.Log))
	if err := telegram.SetCommands(bot, router.Commands()); err != nil {
		mainLogger.WithError(err).Warn("Could not publish bot commands")
	}

	go bot.Start()
	mainLogger.Info("Bot is running")

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	dispatcher.Wait()
	router.Close()
	sweeper.Stop()
	mainLogger.Info("Application shut down gracefully.")
}

func adminSecret(cfg *config.AppConfig) app.Secret {
	if cfg.AdminPasswordHash != "" {
		return app.HashedSecret(cfg.AdminPasswordHash)
	}
	return app.PlainSecret(cfg.AdminPassword)
}
