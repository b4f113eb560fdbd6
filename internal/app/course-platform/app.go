// Package courseplatform собирает и запускает основное HTTP-приложение платформы.
package courseplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/kruenglish/course-platform/internal/cache"
	"github.com/kruenglish/course-platform/internal/config"
	"github.com/kruenglish/course-platform/internal/lib/jwt"
	"github.com/kruenglish/course-platform/internal/meetingprovider"
	"github.com/kruenglish/course-platform/internal/migrations"
	"github.com/kruenglish/course-platform/internal/paymentprovider"
	"github.com/kruenglish/course-platform/internal/rabbitmq"
	adminservice "github.com/kruenglish/course-platform/internal/services/admin"
	assistantservice "github.com/kruenglish/course-platform/internal/services/assistant"
	contactservice "github.com/kruenglish/course-platform/internal/services/contact"
	courseservice "github.com/kruenglish/course-platform/internal/services/course"
	enrollmentservice "github.com/kruenglish/course-platform/internal/services/enrollment"
	leveltestservice "github.com/kruenglish/course-platform/internal/services/leveltest"
	meetingservice "github.com/kruenglish/course-platform/internal/services/meeting"
	"github.com/kruenglish/course-platform/internal/storage"

	"github.com/kruenglish/course-platform/internal/aiprovider"
)

// App основное HTTP-приложение платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New собирает приложение из конфигурации: хранилище, кэш, внешних
// провайдеров, очередь уведомлений, сервисы и маршруты.
//
// Пустая строка подключения к хранилищу включает хранилище в памяти с
// демонстрационными данными, пустой адрес redis отключает кэш, пустая
// строка подключения AMQP отключает публикацию уведомлений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var repo storage.Repository
	var db *storage.Storage
	if cfg.StorageConnectionString == "" {
		logger.Warn("no storage connection string, using in-memory storage with seed data")
		repo = storage.NewMemory()
	} else {
		var err error
		db, err = storage.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		repo = db
	}

	var courseCache courseservice.Cache = cache.Noop{}
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		courseCache = cacheRedis
	} else {
		logger.Warn("no redis address, course cache disabled")
	}

	var publisher *rabbitmq.Publisher
	if cfg.AmqpConnectionString != "" {
		conn, err := rabbitmq.Connect(cfg.AmqpConnectionString, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			conn.Close()
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("no amqp connection string, notifications disabled")
	}

	paymentClient := paymentprovider.NewClient(cfg.StripeSecretKey)
	meetingClient := meetingprovider.NewClient(cfg.ZoomAccountID, cfg.ZoomClientID, cfg.ZoomClientSecret)

	var aiClient assistantservice.Provider
	if cfg.OpenAIAPIKey != "" {
		aiClient = aiprovider.NewClient(cfg.OpenAIAPIKey)
	} else {
		logger.Warn("no openai api key, assistant uses built-in replies")
	}

	tokenMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	enrollmentSvc := enrollmentservice.New(repo, paymentClient, publisher, cfg.Currency, logger)
	courseSvc := courseservice.New(repo, courseCache, logger)
	leveltestSvc := leveltestservice.New(repo, publisher, logger)
	contactSvc := contactservice.New(repo, publisher, logger)
	meetingSvc := meetingservice.New(meetingClient, repo, logger)
	assistantSvc := assistantservice.New(aiClient, repo, logger)
	adminSvc := adminservice.New(repo, paymentClient, tokenMaker, cfg.AdminUsername, cfg.AdminPasswordHash, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, tokenMaker, &Services{
		Enrollment: enrollmentSvc,
		Course:     courseSvc,
		LevelTest:  leveltestSvc,
		Contact:    contactSvc,
		Meeting:    meetingSvc,
		Assistant:  assistantSvc,
		Admin:      adminSvc,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			a.db.DB.Close()
		}
		return err
	}
}
