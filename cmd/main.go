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

	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking"
	getDayCapacityHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_day_capacity"
	getSalonBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_salon_bookings"
	modifyBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/modify_booking"
	proposeRescheduleHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/propose_reschedule"
	transitionBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/transition_booking"
	updateDayCapacityHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_day_capacity"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	capacityRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/capacity"
	incomeServiceClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/incomeservice"
	salonServiceClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/scheduler"
	availabilityService "github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	capacityService "github.com/m04kA/SMC-SalonBookingService/internal/service/capacity"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// salonCatalog источник салонов и услуг: внешний сервис или статический список из конфига
type salonCatalog interface {
	availabilityService.SalonProvider
	createBookingUC.SalonCatalog
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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Scheduler.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилища (postgres или память)
	var (
		bookingStore  bookingsService.BookingStore
		capacityStore capacityService.CapacityRepository
		txMgr         bookingsService.TransactionManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		bookingStore = bookingRepo.NewMemoryRepository()
		capacityStore = capacityRepo.NewMemoryRepository()
		txMgr = txmanager.NopManager{}
		log.Warn("Using in-memory storage, data is lost on restart")
	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")

			bookingStore = bookingRepo.NewRepository(wrappedDB)
			capacityStore = capacityRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			bookingStore = bookingRepo.NewRepository(db)
			capacityStore = capacityRepo.NewRepository(db)
			txMgr = txmanager.NewSQLTransactionManager(db)
		}
	}

	// Инициализируем интеграционных клиентов
	var salons salonCatalog
	if cfg.SalonService.URL != "" {
		salons = salonServiceClient.NewClient(cfg.SalonService.URL, cfg.SalonService.TimeoutDuration(), log)
		log.Info("SalonService client initialized (url=%s, timeout=%ds)", cfg.SalonService.URL, cfg.SalonService.Timeout)
	} else {
		static, err := salonServiceClient.NewStaticProvider(cfg.Salons)
		if err != nil {
			log.Fatal("Failed to load salons from config: %v", err)
		}
		salons = static
		log.Info("Using %d salons from config", len(cfg.Salons))
	}

	var income bookingsService.IncomeSeeder
	if cfg.IncomeService.URL != "" {
		income = incomeServiceClient.NewClient(cfg.IncomeService.URL, cfg.IncomeService.TimeoutDuration(), log)
		log.Info("IncomeService client initialized (url=%s, timeout=%ds)", cfg.IncomeService.URL, cfg.IncomeService.Timeout)
	} else {
		log.Warn("IncomeService url is empty, income drafts are disabled")
	}

	var publisher bookingsService.EventPublisher
	switch cfg.Events.Driver {
	case config.EventsDriverRedis:
		redisClient := events.NewRedisClient(cfg.Events.RedisAddr, cfg.Events.RedisPassword, cfg.Events.RedisDB)
		defer redisClient.Close()
		publisher = events.NewRedisPublisher(redisClient, cfg.Events.Channel, log)
		log.Info("Notifications published to redis (addr=%s, channel=%s)", cfg.Events.RedisAddr, cfg.Events.Channel)
	default:
		publisher = events.NewLogPublisher(log)
		log.Info("Notifications written to log")
	}

	// Инициализируем сервисы. Одни блокировки салонов на запись состояния и на чтение доступности.
	locks := bookingsService.NewSalonLocks()

	capacitySvc := capacityService.NewService(capacityStore, locks, log)
	availabilitySvc := availabilityService.NewService(
		salons,
		capacitySvc,
		bookingStore,
		locks,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingStore,
		availabilitySvc,
		txMgr,
		locks,
		income,
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(salons, bookingSvc, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, location, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	modifyBooking := modifyBookingHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	proposeReschedule := proposeRescheduleHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getDayCapacity := getDayCapacityHandler.NewHandler(capacitySvc, log)
	updateDayCapacity := updateDayCapacityHandler.NewHandler(capacitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		api.Use(rateLimiter.Limit)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Все маршруты требуют X-User-ID и X-User-Role
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Салон ---
	protected.HandleFunc("/salons/{salonId}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/days/{date}/capacity", getDayCapacity.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/days/{date}/capacity", updateDayCapacity.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", modifyBooking.Handle).Methods(http.MethodPatch)

	// Перенос регистрируется раньше {action}, иначе "reschedule" попадёт в action
	protected.HandleFunc("/bookings/{bookingId}/reschedule", proposeReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule/{decision}", transitionBooking.HandleRescheduleDecision).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/{action}", transitionBooking.Handle).Methods(http.MethodPost)

	// Автозавершение просроченных бронирований
	sweeper := scheduler.NewSweeper(bookingSvc, cfg.Scheduler.SweepInterval(), cfg.Scheduler.SweepTimeout(), log)
	sweeper.Start()

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

	sweeper.Stop()
	if rateLimiter != nil {
		rateLimiter.Close()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
