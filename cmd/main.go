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

	addWeeklyScheduleHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/add_weekly_schedule"
	blockDatesHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/block_dates"
	createBookingHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/create_booking"
	deleteExceptionHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/delete_exception"
	deleteScheduleEntryHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/delete_schedule_entry"
	getAvailableSlotsHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/get_business_bookings"
	getOccupancyHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/get_occupancy"
	getScheduleHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/get_schedule"
	paymentWebhookHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/payment_webhook"
	transitionBookingHandler "github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers/transition_booking"
	"github.com/kmlvsk/SBS-BookingEngine/internal/api/middleware"
	"github.com/kmlvsk/SBS-BookingEngine/internal/config"
	bookingRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/booking"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	exceptionRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/exception"
	scheduleRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/schedule"
	serviceRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/service"
	accessGateClient "github.com/kmlvsk/SBS-BookingEngine/internal/integrations/accessgate"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/notifier"
	paymentsClient "github.com/kmlvsk/SBS-BookingEngine/internal/integrations/payments"
	bookingsService "github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings"
	occupancyService "github.com/kmlvsk/SBS-BookingEngine/internal/service/occupancy"
	scheduleService "github.com/kmlvsk/SBS-BookingEngine/internal/service/schedule"
	addWeeklyScheduleUC "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/add_weekly_schedule"
	blockDateUC "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/block_date"
	createBookingUC "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/get_available_slots"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/dbmetrics"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/logger"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/metrics"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/simpletxmanager"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/txmanager"
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

	log.Info("Starting SBS-BookingEngine...")
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

	// Инициализируем интеграционных клиентов
	accessGate := accessGateClient.NewClient(
		cfg.AccessGate.URL,
		time.Duration(cfg.AccessGate.Timeout)*time.Second,
		log,
	)

	payments := paymentsClient.NewClient(
		cfg.Stripe.APIKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		cfg.Stripe.Currency,
		log,
	)

	var publisher notifier.Publisher
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := notifier.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Notification publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		publisher = notifier.NopPublisher{}
		log.Info("Notification publisher disabled")
	}
	defer publisher.Close()

	log.Info("Integration clients initialized (AccessGate=%s timeout=%ds)",
		cfg.AccessGate.URL, cfg.AccessGate.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		businessRepository  *businessRepo.Repository
		serviceRepository   *serviceRepo.Repository
		scheduleRepository  *scheduleRepo.Repository
		exceptionRepository *exceptionRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		exceptionRepository = exceptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		exceptionRepository = exceptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		publisher,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		businessRepository,
		scheduleRepository,
		exceptionRepository,
		log,
	)
	occupancySvc := occupancyService.NewService(
		businessRepository,
		scheduleRepository,
		exceptionRepository,
		bookingRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		businessRepository,
		serviceRepository,
		scheduleRepository,
		exceptionRepository,
		bookingRepository,
		accessGate,
		payments,
		publisher,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		serviceRepository,
		scheduleRepository,
		exceptionRepository,
		bookingRepository,
		log,
	)
	addWeeklyScheduleUseCase := addWeeklyScheduleUC.NewUseCase(
		businessRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	blockDateUseCase := blockDateUC.NewUseCase(
		businessRepository,
		exceptionRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	addWeeklySchedule := addWeeklyScheduleHandler.NewHandler(addWeeklyScheduleUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	deleteScheduleEntry := deleteScheduleEntryHandler.NewHandler(scheduleSvc, log)
	blockDates := blockDatesHandler.NewHandler(blockDateUseCase, log)
	deleteException := deleteExceptionHandler.NewHandler(scheduleSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	getOccupancy := getOccupancyHandler.NewHandler(occupancySvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(payments, bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты: адресация по ID и по публичному slug
	api.HandleFunc("/businesses/{businessId:[0-9]+}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/b/{businessSlug}/available-slots",
		getAvailableSlots.HandleBySlug).Methods(http.MethodGet)

	// Создание бронирования (публичная страница бронирования)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования по публичной ссылке
	api.HandleFunc("/bookings/ref/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)

	// Webhook платёжного провайдера (аутентификация - подпись Stripe)
	api.HandleFunc("/webhooks/payments", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/schedule",
		addWeeklySchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/schedule/{entryId:[0-9]+}",
		deleteScheduleEntry.Handle).Methods(http.MethodDelete)

	// --- Блокировки дат ---
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/blocked-dates",
		blockDates.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/blocked-dates/{exceptionId:[0-9]+}",
		deleteException.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}",
		getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status",
		transitionBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/bookings",
		getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Занятость ---
	protected.HandleFunc("/businesses/{businessId:[0-9]+}/occupancy",
		getOccupancy.Handle).Methods(http.MethodGet)

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

	log.Info("Server exited")
}
