package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	httpadapter "github.com/suchimauz/court-booking-engine/internal/adapters/in/http"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/cache"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/identity"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/logger"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/rabbitmq"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/storage"
	"github.com/suchimauz/court-booking-engine/internal/config"
	"github.com/suchimauz/court-booking-engine/internal/core/availability"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ledger"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
	"github.com/suchimauz/court-booking-engine/internal/core/services"
)

func main() {
	// Переменные окружения из .env, если файл есть
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"storageDriver":   cfg.Storage.Driver,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Сетка слотов и набор кортов из конфигурации
	grid, courts, err := buildDomain(cfg)
	if err != nil {
		log.Error("app.domain.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Хранилище журнала по выбранному драйверу
	store, err := buildStorage(cfg, mainLogger)
	if err != nil {
		log.Error("app.storage.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("app.storage.close_failed", out.LogFields{
				"error": err.Error(),
			})
		}
	}()

	// Загрузка журнала и первичная сборка таблицы занятости
	bookingLedger := ledger.NewLedger(store, mainLogger)
	if err := bookingLedger.Load(context.Background()); err != nil {
		log.Error("app.ledger.load_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	index := availability.NewIndex(grid, courts)
	index.Synchronize(bookingLedger.Active())

	identityAdapter, err := identity.NewFileIdentityAdapter(cfg.Storage.UsersPath, mainLogger)
	if err != nil {
		log.Error("app.identity.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewSuggestionCacheAdapter(cfg.Cache.Size, mainLogger)
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cachePort = cacheAdapter
	}

	var eventPort out.EventPublisherPort
	if cfg.RabbitMq.Enabled {
		publisher, err := rabbitmq.NewEventsPublisher(cfg, mainLogger)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		eventPort = publisher
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("app.rabbitmq.close_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	bookingService := services.NewBookingService(
		grid,
		courts,
		bookingLedger,
		index,
		cachePort,
		eventPort,
		mainLogger,
		cfg.Booking.SearchWindowMinutes,
	)

	// Настройка HTTP сервера
	tokens := httpadapter.NewTokenManager(
		cfg.Auth.JwtSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	router := gin.Default()
	controller := httpadapter.NewBookingController(
		bookingService,
		bookingService,
		identityAdapter,
		tokens,
		cfg,
		mainLogger,
	)
	controller.RegisterRoutes(router)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}

func buildDomain(cfg *config.Config) (domain.Grid, *domain.CourtSet, error) {
	open, err := domain.ParseTimeOfDay(cfg.Booking.OpenTime)
	if err != nil {
		return domain.Grid{}, nil, fmt.Errorf("invalid BOOKING_OPEN_TIME %q", cfg.Booking.OpenTime)
	}
	closeTime, err := domain.ParseTimeOfDay(cfg.Booking.CloseTime)
	if err != nil {
		return domain.Grid{}, nil, fmt.Errorf("invalid BOOKING_CLOSE_TIME %q", cfg.Booking.CloseTime)
	}

	grid, err := domain.NewGrid(open, closeTime, time.Duration(cfg.Booking.SlotMinutes)*time.Minute)
	if err != nil {
		return domain.Grid{}, nil, err
	}

	codes := make([]domain.Court, 0, len(cfg.Booking.Courts))
	for _, code := range cfg.Booking.Courts {
		codes = append(codes, domain.Court(code))
	}
	return grid, domain.NewCourtSet(codes), nil
}

func buildStorage(cfg *config.Config, log out.LoggerPort) (out.StoragePort, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSqlite:
		return storage.NewSqliteStore(cfg.Storage.Path, log)
	default:
		return storage.NewCsvStore(cfg.Storage.Path, log)
	}
}
