package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_company_bookings"
	getMultiDayAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_multi_day_availability"
	getServicesAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_services_availability"
	getTimeContextHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_time_context"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	slotCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/company"
	outboxRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/outbox"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/reminders"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	companiesService "github.com/m04kA/SMC-SchedulingService/internal/service/companies"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getMultiDayAvailabilityUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
	"github.com/m04kA/SMC-SchedulingService/internal/worker/bookingevents"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/tracing"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка работает как обычный *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	companyRepository := companyRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)

	// Redis: кеш слотов и очередь напоминаний
	var (
		redisClient *redis.Client
		slotsCache  *slotCache.Cache
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, slot cache will be bypassed on errors: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		slotsCache = slotCache.New(redisClient, time.Duration(cfg.Scheduling.SlotCacheTTLSeconds)*time.Second)
		log.Info("Slot cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Scheduling.SlotCacheTTLSeconds)
	}

	// Интерфейсы use case'ов не должны получать typed nil
	var (
		readCache   getAvailableSlotsUC.SlotCache
		commitCache createBookingUC.SlotCache
	)
	if slotsCache != nil {
		readCache = slotsCache
		commitCache = slotsCache
	}

	// Инициализируем сервисы
	companySvc := companiesService.NewService(companyRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, companyRepository, log)
	scheduleStore := availability.NewStore(scheduleRepository, bookingRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		companySvc,
		serviceRepository,
		scheduleStore,
		readCache,
		metricsCollector,
		log,
		getAvailableSlotsUC.Config{DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes},
	)

	getMultiDayAvailabilityUseCase := getMultiDayAvailabilityUC.NewUseCase(
		getAvailableSlotsUseCase,
		companySvc,
		serviceRepository,
		log,
		getMultiDayAvailabilityUC.Config{
			DefaultDays:            cfg.Scheduling.DefaultDays,
			MaxDays:                cfg.Scheduling.MaxDays,
			AllServicesDays:        cfg.Scheduling.AllServicesDays,
			DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes,
		},
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		companySvc,
		serviceRepository,
		bookingRepository,
		outboxRepository,
		txMgr,
		commitCache,
		metricsCollector,
		log,
	)

	// Фоновые обработчики событий
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if cfg.Kafka.Enabled {
		publisher := events.NewPublisher(
			txMgr,
			outboxRepository,
			events.NewWriter(cfg.Kafka.Brokers),
			log,
			events.PublisherConfig{
				PollInterval: time.Duration(cfg.Kafka.PublishInterval) * time.Millisecond,
				BatchSize:    cfg.Kafka.PublishBatch,
			},
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			publisher.Run(workerCtx)
		}()
		log.Info("Outbox publisher started (brokers=%v)", cfg.Kafka.Brokers)
	}

	if cfg.Kafka.Enabled && cfg.Reminders.Enabled {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer asynqClient.Close()

		reminderClient := reminders.NewClient(asynqClient, log, reminders.Config{
			Queue:          cfg.Reminders.Queue,
			OffsetsMinutes: cfg.Reminders.OffsetsMinutes,
		})
		consumer := bookingevents.NewConsumer(
			bookingevents.NewReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID),
			reminderClient,
			log,
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			consumer.Run(workerCtx)
		}()
		log.Info("Booking events consumer started (group=%s, queue=%s)", cfg.Kafka.GroupID, cfg.Reminders.Queue)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getMultiDayAvailability := getMultiDayAvailabilityHandler.NewHandler(getMultiDayAvailabilityUseCase, log)
	getServicesAvailability := getServicesAvailabilityHandler.NewHandler(getMultiDayAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	getTimeContext := getTimeContextHandler.NewHandler(companySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}
	r.Use(middleware.LoggingMiddleware(log))

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	// Свободные слоты на день
	api.HandleFunc("/companies/{companyId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Свободные слоты на несколько дней
	api.HandleFunc("/companies/{companyId}/availability", getMultiDayAvailability.Handle).Methods(http.MethodGet)

	// Свободные слоты по всем услугам
	api.HandleFunc("/companies/{companyId}/services/availability", getServicesAvailability.Handle).Methods(http.MethodGet)

	// Часовой пояс и текущее время компании
	api.HandleFunc("/companies/{companyId}/time-context", getTimeContext.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/companies/{companyId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список бронирований компании
	api.HandleFunc("/companies/{companyId}/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем publisher и consumer
	stopWorkers()
	workers.Wait()
	log.Info("Background workers stopped")

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
