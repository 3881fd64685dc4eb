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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	availabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/availability_windows"
	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getShopBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_shop_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_user_bookings"
	payrollSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/payroll_settings"
	rescheduleBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_booking"
	reservationsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reservations"
	shiftsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/shifts"
	timesheetHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/timesheet"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	payrollRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payroll"
	reservationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reservation"
	shiftRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shift"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/authservice"
	availabilityService "github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	payrollSettingsService "github.com/m04kA/SMC-SalonBooking/internal/service/payroll_settings"
	reservationsService "github.com/m04kA/SMC-SalonBooking/internal/service/reservations"
	shiftsService "github.com/m04kA/SMC-SalonBooking/internal/service/shifts"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
	saveRecurringUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/save_recurring_availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	// Метрики нужны сервисам всегда. Без публикации они пишутся в отдельный реестр.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Metrics.ServiceName)
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, metricsCollector)
	}

	// Клиент сервиса авторизации
	authClient := authservice.NewClient(cfg.Auth.URL, time.Duration(cfg.Auth.Timeout)*time.Second, log)
	log.Info("Auth client initialized (url=%s, timeout=%ds)", cfg.Auth.URL, cfg.Auth.Timeout)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	windowRepository := availabilityRepo.NewRepository(wrappedDB)
	shiftRepository := shiftRepo.NewRepository(wrappedDB)
	payrollRepository := payrollRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Хранилище временных удержаний
	var reservationStore reservationsService.Store
	switch cfg.Reservations.Backend {
	case config.ReservationBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		reservationStore = reservationRepo.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
		log.Info("Reservations stored in redis (addr=%s)", cfg.Redis.Addr)
	default:
		reservationStore = reservationRepo.NewRepository(wrappedDB)
		log.Info("Reservations stored in postgres")
	}

	clock := &bookingsService.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, catalogRepository, txMgr, clock, log)
	reservationSvc := reservationsService.NewService(
		reservationStore,
		bookingRepository,
		catalogRepository,
		windowRepository,
		metricsCollector,
		clock,
		log,
		time.Duration(cfg.Reservations.TTLMinutes)*time.Minute,
	)
	availabilitySvc := availabilityService.NewService(windowRepository, catalogRepository, log)
	shiftSvc := shiftsService.NewService(
		shiftRepository,
		payrollRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		clock,
		log,
	)
	payrollSvc := payrollSettingsService.NewService(payrollRepository, clock, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		windowRepository,
		reservationStore,
		txMgr,
		metricsCollector,
		nil,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		windowRepository,
		txMgr,
		metricsCollector,
		nil,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		windowRepository,
		bookingRepository,
		reservationSvc,
		nil,
		log,
		cfg.Booking.SlotGranularityMinutes,
	)
	saveRecurringUseCase := saveRecurringUC.NewUseCase(windowRepository, catalogRepository, txMgr, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	reservations := reservationsHandler.NewHandler(reservationSvc, log)
	availability := availabilityHandler.NewHandler(availabilitySvc, saveRecurringUseCase, log)
	shifts := shiftsHandler.NewHandler(shiftSvc, log)
	timesheet := timesheetHandler.NewHandler(shiftSvc, log)
	payrollSettings := payrollSettingsHandler.NewHandler(payrollSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix. Сессия покупателя нужна и публичным, и защищенным маршрутам записи.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Session)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLSeconds)*time.Second)
		public.Use(limiter.Middleware)
		log.Info("Rate limit on public routes: rps=%.1f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Свободные слоты
	public.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Временное удержание слота сессией
	public.HandleFunc("/reservations", reservations.Reserve).Methods(http.MethodPost)
	public.HandleFunc("/reservations", reservations.Get).Methods(http.MethodGet)
	public.HandleFunc("/reservations", reservations.Release).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authClient, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (back office)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Календарь салона ---
	admin.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/schedule", rescheduleBooking.Handle).Methods(http.MethodPut)

	// --- Доступность мастеров ---
	admin.HandleFunc("/shops/{shopId}/availability", availability.Create).Methods(http.MethodPost)
	admin.HandleFunc("/shops/{shopId}/availability", availability.List).Methods(http.MethodGet)
	admin.HandleFunc("/shops/{shopId}/availability/{windowId}", availability.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/shops/{shopId}/team-members/{teamMemberId}/recurring-availability",
		availability.SaveRecurring).Methods(http.MethodPut)

	// --- Смены ---
	admin.HandleFunc("/team-members/{teamMemberId}/shift", shifts.GetActive).Methods(http.MethodGet)
	admin.HandleFunc("/team-members/{teamMemberId}/shift/clock-in", shifts.ClockIn).Methods(http.MethodPost)
	admin.HandleFunc("/team-members/{teamMemberId}/shift/break-start", shifts.StartBreak).Methods(http.MethodPost)
	admin.HandleFunc("/team-members/{teamMemberId}/shift/break-end", shifts.EndBreak).Methods(http.MethodPost)
	admin.HandleFunc("/team-members/{teamMemberId}/shift/clock-out", shifts.ClockOut).Methods(http.MethodPost)
	admin.HandleFunc("/shifts/mark-paid", shifts.MarkPaid).Methods(http.MethodPost)
	admin.HandleFunc("/shifts/{shiftId}", shifts.GetShift).Methods(http.MethodGet)

	// --- Табель и настройки оплаты ---
	admin.HandleFunc("/timesheet", timesheet.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/timesheet/export", timesheet.Export).Methods(http.MethodGet)
	admin.HandleFunc("/payroll/rates", payrollSettings.ListRates).Methods(http.MethodGet)
	admin.HandleFunc("/payroll/rates/{dayType}", payrollSettings.UpsertRate).Methods(http.MethodPut)
	admin.HandleFunc("/payroll/holidays", payrollSettings.ListHolidays).Methods(http.MethodGet)
	admin.HandleFunc("/payroll/holidays", payrollSettings.CreateHoliday).Methods(http.MethodPost)
	admin.HandleFunc("/payroll/holidays/{holidayId}", payrollSettings.SetHolidayActive).Methods(http.MethodPatch)

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
