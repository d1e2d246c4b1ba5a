package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-BookingSlots/internal/api/handlers/admin_cancel_booking"
	cancelBookingHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/check_slot"
	confirmBookingHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/get_booking"
	getScheduleConfigHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/get_schedule_config"
	listBookingsHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/list_bookings"
	syncCalendarHandler "github.com/m04kA/SMC-BookingSlots/internal/api/handlers/sync_calendar"
	"github.com/m04kA/SMC-BookingSlots/internal/api/middleware"
	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/config"
	bookingRepo "github.com/m04kA/SMC-BookingSlots/internal/infra/storage/booking"
	calendarEventRepo "github.com/m04kA/SMC-BookingSlots/internal/infra/storage/calendarevent"
	calendarClient "github.com/m04kA/SMC-BookingSlots/internal/integrations/calendar"
	bookingsService "github.com/m04kA/SMC-BookingSlots/internal/service/bookings"
	configService "github.com/m04kA/SMC-BookingSlots/internal/service/config"
	"github.com/m04kA/SMC-BookingSlots/internal/service/schedule"
	checkSlotUC "github.com/m04kA/SMC-BookingSlots/internal/usecase/check_slot"
	createBookingUC "github.com/m04kA/SMC-BookingSlots/internal/usecase/create_booking"
	expireHoldsUC "github.com/m04kA/SMC-BookingSlots/internal/usecase/expire_holds"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingSlots/internal/usecase/get_available_slots"
	syncCalendarUC "github.com/m04kA/SMC-BookingSlots/internal/usecase/sync_calendar"
	"github.com/m04kA/SMC-BookingSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingSlots/pkg/jobs"
	"github.com/m04kA/SMC-BookingSlots/pkg/logger"
	"github.com/m04kA/SMC-BookingSlots/pkg/metrics"
	"github.com/m04kA/SMC-BookingSlots/pkg/txmanager"
)

const (
	jobExpireHolds  = "expire_holds"
	jobCalendarSync = "calendar_sync"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-BookingSlots...")
	log.Info("Configuration loaded from %s", *configPath)

	// Собираем движок доступности из политики бронирования
	engineCfg, err := cfg.Booking.EngineConfig()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	engine, err := availability.NewEngine(engineCfg)
	if err != nil {
		log.Fatal("Failed to build availability engine: %v", err)
	}
	log.Info("Availability engine ready (tz=%s, windows=%d, horizon=%d days)",
		engineCfg.TimeZone, len(engineCfg.Windows), engineCfg.MaxAdvanceDays)

	// Инициализируем метрики (если включены)
	// nil-коллектор безопасен: все методы метрик ничего не делают
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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	calendarEventRepository := calendarEventRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Загрузчик занятых интервалов (бронирования + кэш календаря)
	blockerLoader := schedule.NewLoader(bookingRepository, calendarEventRepository, engineCfg.MaxAdvanceDays)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	configSvc := configService.NewService(engine, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(blockerLoader, engine, metricsCollector, log)
	checkSlotUseCase := checkSlotUC.NewUseCase(blockerLoader, engine, metricsCollector, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockerLoader,
		engine,
		txMgr,
		metricsCollector,
		createBookingUC.Options{
			HoldTTL:     cfg.Booking.HoldTTL(),
			AutoConfirm: cfg.Booking.AutoConfirm,
		},
		log,
	)
	expireHoldsUseCase := expireHoldsUC.NewUseCase(bookingRepository, metricsCollector, log)

	// Интеграция с календарем (опционально)
	var syncCalendarUseCase syncCalendarHandler.SyncCalendarUseCase
	if cfg.Calendar.Enabled {
		client := calendarClient.NewClient(
			cfg.Calendar.URL,
			cfg.Calendar.CalendarID,
			cfg.Calendar.Token,
			time.Duration(cfg.Calendar.Timeout)*time.Second,
			log,
		)
		syncCalendarUseCase = syncCalendarUC.NewUseCase(
			client,
			calendarEventRepository,
			txMgr,
			metricsCollector,
			engineCfg.MaxAdvanceDays,
			log,
		)
		log.Info("Calendar integration enabled (url=%s, calendar=%s, timeout=%ds)",
			cfg.Calendar.URL, cfg.Calendar.CalendarID, cfg.Calendar.Timeout)
	} else {
		log.Info("Calendar integration disabled")
	}

	// Фоновые задачи
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.New(log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		jobTimeout := time.Duration(cfg.Jobs.Timeout) * time.Second

		err = scheduler.AddJob(jobExpireHolds, cfg.Jobs.ExpireHoldsCron, jobTimeout, func(ctx context.Context) error {
			_, err := expireHoldsUseCase.Execute(ctx)
			return err
		})
		if err != nil {
			log.Fatal("Failed to register job %s: %v", jobExpireHolds, err)
		}

		if syncCalendarUseCase != nil {
			err = scheduler.AddJob(jobCalendarSync, cfg.Jobs.CalendarSyncCron, jobTimeout, func(ctx context.Context) error {
				_, err := syncCalendarUseCase.Execute(ctx)
				return err
			})
			if err != nil {
				log.Fatal("Failed to register job %s: %v", jobCalendarSync, err)
			}
		}

		scheduler.Start()

		// Первая синхронизация сразу, не дожидаясь расписания
		if syncCalendarUseCase != nil {
			if err := scheduler.RunNow(jobCalendarSync); err != nil {
				log.Warn("Initial calendar sync was not started: %v", err)
			}
		}
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(configSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := admin_cancel_booking.NewHandler(bookingSvc, log)
	syncCalendar := syncCalendarHandler.NewHandler(syncCalendarUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем middleware (metrics - только если метрики включены)
	var httpRecorder middleware.MetricsRecorder
	if cfg.Metrics.Enabled {
		httpRecorder = metricsCollector
	}
	r.Use(middleware.Standard(httpRecorder, log)...)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Доступность ---
	api.HandleFunc("/schedule", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/check", checkSlot.Handle).Methods(http.MethodPost)

	// --- Бронирования (доступ по публичному коду) ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", adminCancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/calendar/sync", syncCalendar.Handle).Methods(http.MethodPost)

	if cfg.Admin.Token == "" {
		log.Warn("Admin token is empty: admin routes will reject every request")
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи после того, как HTTP перестал принимать запросы
	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			log.Error("Scheduler stopped with error: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
