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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkAvailabilityHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/check_availability"
	closeWizardHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/close_wizard"
	getReservationHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/get_user_reservations"
	getWizardHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/get_wizard"
	previousStepHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/previous_step"
	startWizardHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/start_wizard"
	submitPaymentHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/submit_payment"
	updateDraftHandler "github.com/m04kA/SMC-RentalWizard/internal/api/handlers/update_draft"
	"github.com/m04kA/SMC-RentalWizard/internal/api/middleware"
	"github.com/m04kA/SMC-RentalWizard/internal/config"
	sessionStore "github.com/m04kA/SMC-RentalWizard/internal/infra/session"
	commitlogRepo "github.com/m04kA/SMC-RentalWizard/internal/infra/storage/commitlog"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/paymentgw"
	rentalAPIClient "github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
	reservationsService "github.com/m04kA/SMC-RentalWizard/internal/service/reservations"
	wizardService "github.com/m04kA/SMC-RentalWizard/internal/service/wizard"
	checkAvailabilityUC "github.com/m04kA/SMC-RentalWizard/internal/usecase/check_availability"
	submitPaymentUC "github.com/m04kA/SMC-RentalWizard/internal/usecase/submit_payment"
	"github.com/m04kA/SMC-RentalWizard/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalWizard/pkg/logger"
	"github.com/m04kA/SMC-RentalWizard/pkg/metrics"
	"github.com/m04kA/SMC-RentalWizard/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalWizard/pkg/txmanager"
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

	log.Info("Starting SMC-RentalWizard...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (журнал идемпотентности коммитов)
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

	// Подключаемся к Redis (хранилище сессий визарда)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	sessions := sessionStore.NewStore(redisClient, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	// Интерфейсные обертки метрик: при выключенных метриках остаются nil,
	// чтобы внутри сервисов не звать методы на nil *metrics.Metrics
	var (
		clientMetrics  rentalAPIClient.MetricsObserver
		wizardMetrics  wizardService.Metrics
		checkMetrics   checkAvailabilityUC.Metrics
		paymentMetrics submitPaymentUC.Metrics
	)
	if cfg.Metrics.Enabled {
		clientMetrics = metricsCollector
		wizardMetrics = metricsCollector
		checkMetrics = metricsCollector
		paymentMetrics = metricsCollector
	}

	// Инициализируем клиента внешнего Rental API
	rentalClient := rentalAPIClient.NewClient(
		cfg.RentalAPI.URL,
		time.Duration(cfg.RentalAPI.Timeout)*time.Second,
		cfg.RentalAPI.RPS,
		log,
		clientMetrics,
	)
	log.Info("Rental API client initialized (url=%s, timeout=%ds, rps=%.0f)",
		cfg.RentalAPI.URL, cfg.RentalAPI.Timeout, cfg.RentalAPI.RPS)

	// Инициализируем платежный шлюз
	var gateway paymentgw.Gateway
	switch cfg.Payment.Provider {
	case "simulated":
		gateway = paymentgw.NewSimulatedGateway(
			time.Duration(cfg.Payment.DelayMS)*time.Millisecond,
			cfg.Payment.SuccessRate,
			log,
		)
		log.Info("Simulated payment gateway initialized (success_rate=%.2f, delay=%dms)",
			cfg.Payment.SuccessRate, cfg.Payment.DelayMS)
	default:
		log.Fatal("Unknown payment provider: %s", cfg.Payment.Provider)
	}

	// Инициализируем репозиторий журнала коммитов (с метриками или без)
	var commitRepository *commitlogRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		commitRepository = commitlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		commitRepository = commitlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	wizardSvc := wizardService.NewService(
		sessions,
		rentalClient,
		wizardMetrics,
		log,
	)
	reservationsSvc := reservationsService.NewService(rentalClient, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		sessions,
		rentalClient,
		checkMetrics,
		log,
	)
	submitPaymentUseCase := submitPaymentUC.NewUseCase(
		sessions,
		gateway,
		rentalClient,
		commitRepository,
		txMgr,
		paymentMetrics,
		log,
	)

	// Инициализируем handlers
	startWizard := startWizardHandler.NewHandler(wizardSvc, log)
	getWizard := getWizardHandler.NewHandler(wizardSvc, log)
	updateDraft := updateDraftHandler.NewHandler(wizardSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	submitPayment := submitPaymentHandler.NewHandler(submitPaymentUseCase, log)
	previousStep := previousStepHandler.NewHandler(wizardSvc, log)
	closeWizard := closeWizardHandler.NewHandler(wizardSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)

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
	// PROTECTED ROUTES (требуют Authorization и X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Визард бронирования ---
	// Открытие визарда для объекта каталога
	protected.HandleFunc("/wizard", startWizard.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/wizard/{sessionId}", getWizard.Handle).Methods(http.MethodGet)

	// Обновление черновика (шаг выбора дат)
	protected.HandleFunc("/wizard/{sessionId}/draft", updateDraft.Handle).Methods(http.MethodPatch)

	// Проверка доступности и переход к оплате
	protected.HandleFunc("/wizard/{sessionId}/check-availability", checkAvailability.Handle).Methods(http.MethodPost)

	// Оплата и коммит бронирования
	protected.HandleFunc("/wizard/{sessionId}/payment", submitPayment.Handle).Methods(http.MethodPost)

	// Возврат с шага оплаты к выбору дат
	protected.HandleFunc("/wizard/{sessionId}/back", previousStep.Handle).Methods(http.MethodPost)

	// Закрытие визарда
	protected.HandleFunc("/wizard/{sessionId}", closeWizard.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

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
