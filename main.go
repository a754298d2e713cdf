package main

import (
	"EnrollHub/ai/gpt"
	"EnrollHub/bot"
	"EnrollHub/impl/core"
	"EnrollHub/internal/config"
	"EnrollHub/internal/database"
	"EnrollHub/internal/http-server/api"
	"EnrollHub/internal/lib/logger"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/auth"
	"EnrollHub/internal/service/catalog"
	"EnrollHub/internal/service/enrollment"
	"EnrollHub/internal/service/verification"
	"EnrollHub/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			// errors are forwarded to the admin chat
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting enrollhub", slog.String("config", *configPath), slog.String("env", conf.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	lg.Debug("debug messages enabled")

	cat, err := catalog.Load(conf.Catalog.Path)
	if err != nil {
		lg.Error("loading catalog", sl.Err(err))
		stop()
		os.Exit(1)
	}

	handler := core.New(cat, lg)
	handler.SetFileSigning(conf.Files.Secret, conf.Files.UrlTTL)

	authService := auth.NewAuthService(conf, lg)
	handler.SetAuthService(authService)
	lg.With(
		slog.String("admin", conf.Admin.Email),
		sl.Secret("client_id", conf.Admin.ClientID),
	).Info("auth service initialized")

	analyzer := gpt.NewAnalyzer(conf, lg)
	verifier := verification.New(lg,
		verification.LinkStrategy{},
		verification.TransactionStrategy{},
	)
	verifier.Register(verification.NewScreenshotStrategy(analyzer))
	if conf.OpenAI.ApiKey == "" {
		lg.Warn("openai api key not set; screenshot proofs will fail verification")
	}
	lg.With(
		sl.Secret("openai_key", conf.OpenAI.ApiKey),
		slog.String("model", conf.OpenAI.Model),
	).Info("payment analyzer initialized")

	var storage enrollment.StateStorage = enrollment.NewMemoryStorage()
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		if err = db.EnsureSessionExpiry(ctx, conf.Enrollment.SessionTTL); err != nil {
			lg.Warn("abandoned sessions will not expire", sl.Err(err))
		}
		storage = enrollment.NewMongoStateStorage(db)
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		lg.Warn("mongo disabled; sessions are kept in memory and registrations are not stored")
	}

	flow := enrollment.NewFlow(cat, storage, verifier, lg)
	flow.SetSubmitTimeout(conf.Enrollment.SubmitTimeout)
	if db != nil {
		flow.SetRegistrationStore(db)
		flow.SetFileStore(db)
	}
	flow.AddListener(handler)
	handler.SetEnrollment(flow)

	hub := ws.NewHub(lg)
	hub.SetHandler(handler)
	handler.SetBroadcaster(hub)
	go hub.Run(ctx)

	if tgBot != nil {
		tgBot.SetStatsProvider(handler)
		handler.SetNotifier(tgBot)
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				lg.Error("telegram bot error", sl.Err(err))
			}
		}()
	}

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
