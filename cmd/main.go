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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookFromWaitlistHandler "github.com/velline/salon-booking-service/internal/api/handlers/book_from_waitlist"
	cancelReservationHandler "github.com/velline/salon-booking-service/internal/api/handlers/cancel_reservation"
	changeReservationStatusHandler "github.com/velline/salon-booking-service/internal/api/handlers/change_reservation_status"
	createBookingHandler "github.com/velline/salon-booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/velline/salon-booking-service/internal/api/handlers/get_available_slots"
	getClientReservationsHandler "github.com/velline/salon-booking-service/internal/api/handlers/get_client_reservations"
	getReservationHandler "github.com/velline/salon-booking-service/internal/api/handlers/get_reservation"
	getStaffReservationsHandler "github.com/velline/salon-booking-service/internal/api/handlers/get_staff_reservations"
	getStaffScheduleHandler "github.com/velline/salon-booking-service/internal/api/handlers/get_staff_schedule"
	runRemindersHandler "github.com/velline/salon-booking-service/internal/api/handlers/run_reminders"
	setStaffScheduleHandler "github.com/velline/salon-booking-service/internal/api/handlers/set_staff_schedule"
	"github.com/velline/salon-booking-service/internal/api/middleware"
	"github.com/velline/salon-booking-service/internal/config"
	catalogRepo "github.com/velline/salon-booking-service/internal/infra/storage/catalog"
	loyaltyRepo "github.com/velline/salon-booking-service/internal/infra/storage/loyalty"
	promoRepo "github.com/velline/salon-booking-service/internal/infra/storage/promo"
	reservationRepo "github.com/velline/salon-booking-service/internal/infra/storage/reservation"
	scheduleRepo "github.com/velline/salon-booking-service/internal/infra/storage/schedule"
	waitlistRepo "github.com/velline/salon-booking-service/internal/infra/storage/waitlist"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
	reservationsService "github.com/velline/salon-booking-service/internal/service/reservations"
	scheduleService "github.com/velline/salon-booking-service/internal/service/schedule"
	bookFromWaitlistUC "github.com/velline/salon-booking-service/internal/usecase/book_from_waitlist"
	changeStatusUC "github.com/velline/salon-booking-service/internal/usecase/change_status"
	createBookingUC "github.com/velline/salon-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/velline/salon-booking-service/internal/usecase/get_available_slots"
	promoteWaitlistUC "github.com/velline/salon-booking-service/internal/usecase/promote_waitlist"
	runRemindersUC "github.com/velline/salon-booking-service/internal/usecase/run_reminders"
	"github.com/velline/salon-booking-service/pkg/logger"
	"github.com/velline/salon-booking-service/pkg/metrics"
	"github.com/velline/salon-booking-service/pkg/txmanager"
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

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

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

	// Применяем миграции
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(db)
	scheduleRepository := scheduleRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	promoRepository := promoRepo.NewRepository(db)
	loyaltyRepository := loyaltyRepo.NewRepository(db)
	waitlistRepository := waitlistRepo.NewRepository(db)

	txManager := txmanager.NewTransactionManager(db)

	// Нотификатор подключается только при включенных уведомлениях;
	// use cases получают nil и пропускают отправку, если он выключен
	var (
		bookingNotifier  createBookingUC.Notifier
		statusNotifier   changeStatusUC.Notifier
		waitlistNotifier promoteWaitlistUC.Notifier
		reminderNotifier runRemindersUC.Notifier
	)
	if cfg.Notifications.Enabled {
		notifierClient := notifier.NewClient(cfg.Notifications.AMQPURL, cfg.Notifications.Queue, log)
		bookingNotifier = notifierClient
		statusNotifier = notifierClient
		waitlistNotifier = notifierClient
		reminderNotifier = notifierClient
		log.Info("Notifications enabled (queue=%s)", cfg.Notifications.Queue)
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		catalogRepository,
		cfg.Booking.BufferMinutes,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		promoRepository,
		loyaltyRepository,
		txManager,
		bookingNotifier,
		metricsCollector,
		createBookingUC.Config{
			LoyaltyEnabled:  cfg.Loyalty.Enabled,
			StampsPerReward: cfg.Loyalty.StampsPerReward,
			DefaultLanguage: cfg.Notifications.DefaultLanguage,
		},
		log,
	)

	promoteWaitlistUseCase := promoteWaitlistUC.NewUseCase(
		waitlistRepository,
		txManager,
		waitlistNotifier,
		metricsCollector,
		cfg.Notifications.DefaultLanguage,
		log,
	)

	changeStatusUseCase := changeStatusUC.NewUseCase(
		reservationRepository,
		promoteWaitlistUseCase,
		txManager,
		statusNotifier,
		metricsCollector,
		cfg.Notifications.DefaultLanguage,
		log,
	)

	bookFromWaitlistUseCase := bookFromWaitlistUC.NewUseCase(
		waitlistRepository,
		createBookingUseCase,
		log,
	)

	runRemindersUseCase := runRemindersUC.NewUseCase(
		reservationRepository,
		reminderNotifier,
		cfg.Booking.ReminderWindowMinutes,
		cfg.Notifications.DefaultLanguage,
		log,
	)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, catalogRepository, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(changeStatusUseCase, log)
	changeReservationStatus := changeReservationStatusHandler.NewHandler(changeStatusUseCase, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)
	getStaffReservations := getStaffReservationsHandler.NewHandler(reservationsSvc, log)
	getStaffSchedule := getStaffScheduleHandler.NewHandler(scheduleSvc, log)
	setStaffSchedule := setStaffScheduleHandler.NewHandler(scheduleSvc, log)
	bookFromWaitlist := bookFromWaitlistHandler.NewHandler(bookFromWaitlistUseCase, log)
	runReminders := runRemindersHandler.NewHandler(runRemindersUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для записи
	api.HandleFunc("/staff/{staffId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// График работы мастера
	api.HandleFunc("/staff/{staffId}/schedule", getStaffSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/reservations", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/status", changeReservationStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Управление мастерами (для персонала) ---
	protected.HandleFunc("/staff/{staffId}/reservations", getStaffReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/schedule", setStaffSchedule.Handle).Methods(http.MethodPut)

	// --- Лист ожидания ---
	protected.HandleFunc("/waitlist/{entryId}/book", bookFromWaitlist.Handle).Methods(http.MethodPost)

	// --- Служебные ---
	// Запуск сканов напоминаний, дергается внешним cron-триггером
	protected.HandleFunc("/internal/reminders/run", runReminders.Handle).Methods(http.MethodPost)

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

	log.Info("Server stopped gracefully")
}
