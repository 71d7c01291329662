package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/cancel_reservation"
	clickSelectionHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/click_selection"
	createReservationHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/create_reservation"
	deleteScheduleOverrideHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/delete_schedule_override"
	getAvailableTimesHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/get_available_times"
	getReservationHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/get_schedule"
	getStudioReservationsHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/get_studio_reservations"
	getUserReservationsHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/get_user_reservations"
	quotePriceHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/quote_price"
	setScheduleOverrideHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/set_schedule_override"
	updateScheduleHandler "github.com/nrgaliy/Studio-BookingService/internal/api/handlers/update_schedule"
	"github.com/nrgaliy/Studio-BookingService/internal/api/middleware"
	"github.com/nrgaliy/Studio-BookingService/internal/config"
	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/infra/cache"
	reservationRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/schedule"
	staffRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/staff"
	rewardsClient "github.com/nrgaliy/Studio-BookingService/internal/integrations/rewards"
	reservationsService "github.com/nrgaliy/Studio-BookingService/internal/service/reservations"
	scheduleService "github.com/nrgaliy/Studio-BookingService/internal/service/schedule"
	"github.com/nrgaliy/Studio-BookingService/internal/tasks"
	clickSelectionUC "github.com/nrgaliy/Studio-BookingService/internal/usecase/click_selection"
	createReservationUC "github.com/nrgaliy/Studio-BookingService/internal/usecase/create_reservation"
	getAvailableTimesUC "github.com/nrgaliy/Studio-BookingService/internal/usecase/get_available_times"
	quotePriceUC "github.com/nrgaliy/Studio-BookingService/internal/usecase/quote_price"
	"github.com/nrgaliy/Studio-BookingService/pkg/dbmetrics"
	"github.com/nrgaliy/Studio-BookingService/pkg/logger"
	"github.com/nrgaliy/Studio-BookingService/pkg/metrics"
	"github.com/nrgaliy/Studio-BookingService/pkg/simpletxmanager"
	"github.com/nrgaliy/Studio-BookingService/pkg/txmanager"
)

// nopEnqueuer подменяет очередь уведомлений при выключенных уведомлениях
type nopEnqueuer struct{}

func (nopEnqueuer) EnqueueReservationConfirmed(context.Context, *domain.Reservation) error {
	return nil
}

func (nopEnqueuer) EnqueueReservationCancelled(context.Context, *domain.Reservation) error {
	return nil
}

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

	log.Info("Starting Studio-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Подключаемся к Redis (кеш каталога + очередь уведомлений)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем клиент скидочного сервиса
	rewards := rewardsClient.NewClient(
		cfg.RewardsService.URL,
		time.Duration(cfg.RewardsService.Timeout)*time.Second,
		log,
	)
	log.Info("Rewards client initialized (url=%s timeout=%ds)",
		cfg.RewardsService.URL, cfg.RewardsService.Timeout)

	// Инициализируем очередь уведомлений (asynq поверх того же Redis)
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Интерфейс постановки уведомлений (используется сервисом и usecase'ом)
	type NotificationEnqueuer interface {
		EnqueueReservationConfirmed(ctx context.Context, res *domain.Reservation) error
		EnqueueReservationCancelled(ctx context.Context, res *domain.Reservation) error
	}
	var notifications NotificationEnqueuer = nopEnqueuer{}
	var worker *tasks.Worker
	if cfg.Notifications.Enabled {
		asynqClient := asynq.NewClient(redisOpts)
		defer asynqClient.Close()

		notifications = tasks.NewEnqueuer(asynqClient, log)

		notifier := tasks.NewNotifier(
			cfg.Notifications.WebhookURL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		worker = tasks.NewWorker(redisOpts, notifier, cfg.Notifications.Concurrency, log)
		log.Info("Notifications enabled (webhook=%s, concurrency=%d)",
			cfg.Notifications.WebhookURL, cfg.Notifications.Concurrency)
	} else {
		log.Info("Notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		staffRepository       *staffRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш каталога доступности с инвалидацией через Redis pub/sub
	cacheCtx, cacheCancel := context.WithCancel(context.Background())
	defer cacheCancel()
	catalogCache := cache.NewCatalogCache(cacheCtx, rdb, log, metricsCollector, cfg.Cache.Capacity)
	log.Info("Catalog cache initialized (capacity=%d)", cfg.Cache.Capacity)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		staffRepository,
		catalogCache,
		notifications,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		staffRepository,
		catalogCache,
		nil,
		log,
	)

	// Инициализируем use cases
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		catalogCache,
		log,
	)

	clickSelectionUseCase := clickSelectionUC.NewUseCase(
		getAvailableTimesUseCase,
		cfg.Pricing.HourlyRate,
		log,
	)

	quotePriceUseCase := quotePriceUC.NewUseCase(
		rewards,
		cfg.Pricing.HourlyRate,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		rewards,
		txMgr,
		catalogCache,
		notifications,
		cfg.Pricing.HourlyRate,
		log,
	)

	// Инициализируем handlers
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	clickSelection := clickSelectionHandler.NewHandler(clickSelectionUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getStudioReservations := getStudioReservationsHandler.NewHandler(reservationSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	setScheduleOverride := setScheduleOverrideHandler.NewHandler(scheduleSvc, log)
	deleteScheduleOverride := deleteScheduleOverrideHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог доступности студии на день
	api.HandleFunc("/studios/{studioId}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// Редьюсер выбора слотов (клик по слоту)
	api.HandleFunc("/selection/click", clickSelection.Handle).Methods(http.MethodPost)

	// Расписание студии
	api.HandleFunc("/studios/{studioId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Предварительный расчёт цены со скидками
	protected.HandleFunc("/pricing/quote", quotePrice.Handle).Methods(http.MethodPost)

	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление студией (для сотрудников) ---
	// Список бронирований студии
	protected.HandleFunc("/studios/{studioId}/reservations", getStudioReservations.Handle).Methods(http.MethodGet)

	// Обновление недельного расписания
	protected.HandleFunc("/studios/{studioId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Переопределения расписания на конкретные даты
	protected.HandleFunc("/studios/{studioId}/schedule/overrides/{date}",
		setScheduleOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/studios/{studioId}/schedule/overrides/{date}",
		deleteScheduleOverride.Handle).Methods(http.MethodDelete)

	// Запускаем воркер уведомлений
	if worker != nil {
		go func() {
			if err := worker.Start(); err != nil {
				log.Error("Notification worker stopped: %v", err)
			}
		}()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем воркер уведомлений
	if worker != nil {
		worker.Shutdown()
		log.Info("Notification worker stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
