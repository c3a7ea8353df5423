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

	cancelReservationHandler "github.com/salonmarket/booking-engine/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/salonmarket/booking-engine/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/salonmarket/booking-engine/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/salonmarket/booking-engine/internal/api/handlers/get_availability"
	getEligibleStaffHandler "github.com/salonmarket/booking-engine/internal/api/handlers/get_eligible_staff"
	getReservationHandler "github.com/salonmarket/booking-engine/internal/api/handlers/get_reservation"
	getSalonConfigHandler "github.com/salonmarket/booking-engine/internal/api/handlers/get_salon_config"
	getSalonReservationsHandler "github.com/salonmarket/booking-engine/internal/api/handlers/get_salon_reservations"
	getUserReservationsHandler "github.com/salonmarket/booking-engine/internal/api/handlers/get_user_reservations"
	markNoShowHandler "github.com/salonmarket/booking-engine/internal/api/handlers/mark_no_show"
	rescheduleReservationHandler "github.com/salonmarket/booking-engine/internal/api/handlers/reschedule_reservation"
	updateSalonConfigHandler "github.com/salonmarket/booking-engine/internal/api/handlers/update_salon_config"
	validatePromoHandler "github.com/salonmarket/booking-engine/internal/api/handlers/validate_promo"
	"github.com/salonmarket/booking-engine/internal/api/middleware"
	"github.com/salonmarket/booking-engine/internal/config"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	promoRepo "github.com/salonmarket/booking-engine/internal/infra/storage/promo"
	reservationRepo "github.com/salonmarket/booking-engine/internal/infra/storage/reservation"
	catalogServiceClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	configService "github.com/salonmarket/booking-engine/internal/service/config"
	reservationsService "github.com/salonmarket/booking-engine/internal/service/reservations"
	createReservationUC "github.com/salonmarket/booking-engine/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/salonmarket/booking-engine/internal/usecase/get_availability"
	listEligibleStaffUC "github.com/salonmarket/booking-engine/internal/usecase/list_eligible_staff"
	rescheduleReservationUC "github.com/salonmarket/booking-engine/internal/usecase/reschedule_reservation"
	validatePromoUC "github.com/salonmarket/booking-engine/internal/usecase/validate_promo"
	"github.com/salonmarket/booking-engine/pkg/dbmetrics"
	"github.com/salonmarket/booking-engine/pkg/logger"
	"github.com/salonmarket/booking-engine/pkg/metrics"
	"github.com/salonmarket/booking-engine/pkg/simpletxmanager"
	"github.com/salonmarket/booking-engine/pkg/txmanager"
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

	log.Info("Starting salon-booking-engine...")
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

	// Инициализируем клиент каталога
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		promoRepository       *promoRepo.Repository
		configRepository      *configRepo.Repository
	)

	// Transaction manager для usecase-ов и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		promoRepository = promoRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		promoRepository = promoRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		catalogClient,
		txMgr,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		promoRepository,
		catalogClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		configRepository,
		catalogClient,
		log,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		catalogClient,
		txMgr,
		log,
	)
	validatePromoUseCase := validatePromoUC.NewUseCase(
		promoRepository,
		catalogClient,
		log,
	)
	listEligibleStaffUseCase := listEligibleStaffUC.NewUseCase(
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getEligibleStaff := getEligibleStaffHandler.NewHandler(listEligibleStaffUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	validatePromo := validatePromoHandler.NewHandler(validatePromoUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationsSvc, log)
	markNoShow := markNoShowHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getSalonReservations := getSalonReservationsHandler.NewHandler(reservationsSvc, log)
	getSalonConfig := getSalonConfigHandler.NewHandler(configSvc, log)
	updateSalonConfig := updateSalonConfigHandler.NewHandler(configSvc, log)

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

	// Сетка доступных слотов мастера
	api.HandleFunc("/salons/{salonId}/staff/{staffId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Мастера, выполняющие услугу (варианты выбора мастера)
	api.HandleFunc("/salons/{salonId}/services/{serviceId}/staff",
		getEligibleStaff.Handle).Methods(http.MethodGet)

	// Настройки слотов салона
	api.HandleFunc("/salons/{salonId}/config",
		getSalonConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на другое окно
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Завершение визита (для менеджеров)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)

	// Отметка неявки клиента (для менеджеров)
	protected.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Промокоды ---
	// Предварительная проверка промокода
	protected.HandleFunc("/promos/validate", validatePromo.Handle).Methods(http.MethodPost)

	// --- Управление салоном (для менеджеров) ---
	// Список бронирований салона
	protected.HandleFunc("/salons/{salonId}/reservations", getSalonReservations.Handle).Methods(http.MethodGet)

	// Обновление настроек слотов салона
	protected.HandleFunc("/salons/{salonId}/config", updateSalonConfig.Handle).Methods(http.MethodPut)

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
