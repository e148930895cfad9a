package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"signal-relay/internal/bot"
	"signal-relay/internal/cache"
	"signal-relay/internal/config"
	"signal-relay/internal/db"
	"signal-relay/internal/gateway"
	"signal-relay/internal/handler"
	"signal-relay/internal/provider"
	"signal-relay/internal/repository"
	"signal-relay/internal/service"
	"signal-relay/internal/session"
	"signal-relay/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	tele "gopkg.in/telebot.v3"

	_ "signal-relay/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	connectRedisFunc       = cache.Connect
	connectDBFunc          = db.Connect
	initTracerFunc         = tracing.InitTracer
	newBotFunc             = bot.NewBot
	startBotFunc           = func(b *tele.Bot) { go b.Start() }
	stopBotFunc            = func(b *tele.Bot) { b.Stop() }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Signal Relay API
// @version         1.0
// @description     Trading-signal relay with interactive Telegram message navigation.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Session store: Redis when configured, in-memory otherwise.
	var sessions session.Store = session.NewMemoryStore()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)
		log.Println("Connected to Redis")
	}

	// Subscriber directory: optional, backs broadcast dispatch.
	var pool *pgxpool.Pool
	var directory *repository.SubscriberRepository
	if cfg.DatabaseURL != "" {
		pool, err = connectDBFunc(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to Postgres: %v", err)
		}
		defer pool.Close()
		directory = repository.NewSubscriberRepository(pool, tracer)
		if err := directory.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		log.Println("Connected to Postgres")
	}

	providerTimeout := time.Duration(cfg.ProviderTimeoutSecs) * time.Second
	charts := provider.NewChartClient(cfg.ChartServiceURL, providerTimeout, tracer)
	sentiment := provider.NewSentimentClient(cfg.NewsServiceURL, providerTimeout, tracer)
	calendar := provider.NewCalendarClient(cfg.CalendarServiceURL, providerTimeout, tracer)

	// Messaging gateway and Telegram bot.
	var gw service.Gateway
	var tgBot *tele.Bot
	if cfg.TelegramBotToken != "" {
		tgBot, err = newBotFunc(cfg.TelegramBotToken)
		if err != nil {
			log.Fatalf("failed to create Telegram bot: %v", err)
		}
		gw = gateway.NewTelegram(tgBot)
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
	}

	var dir service.SubscriberDirectory
	var botDir bot.SubscriberDirectory
	if directory != nil {
		dir = directory
		botDir = directory
	}

	dispatchService := service.NewDispatchService(tracer, gw, sessions, dir)
	interactionService := service.NewInteractionService(tracer, gw, sessions, charts, sentiment, calendar, providerTimeout)

	if tgBot != nil {
		bot.RegisterHandlers(tgBot, interactionService, botDir)
		if cfg.TelegramPolling {
			startBotFunc(tgBot)
			defer stopBotFunc(tgBot)
			log.Println("Telegram bot started")
		}
	}

	var dispatcher handler.Dispatcher
	if gw != nil {
		dispatcher = dispatchService
	}
	h := handler.New(tracer, dispatcher, interactionService,
		redisPinger(redisClient), postgresPinger(pool))

	r := newRouterFunc()
	r.Use(otelgin.Middleware("signal-relay"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddrFromEnv(),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddrFromEnv() string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func redisPinger(client *redis.Client) handler.Pinger {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

func postgresPinger(pool *pgxpool.Pool) handler.Pinger {
	if pool == nil {
		return nil
	}
	return func(ctx context.Context) error { return pool.Ping(ctx) }
}
