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

	cancelAppointmentHandler "github.com/timenest/timenest-api/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/timenest/timenest-api/internal/api/handlers/create_appointment"
	createAvailabilityHandler "github.com/timenest/timenest-api/internal/api/handlers/create_availability"
	createMeetingHandler "github.com/timenest/timenest-api/internal/api/handlers/create_meeting"
	deleteAvailabilityHandler "github.com/timenest/timenest-api/internal/api/handlers/delete_availability"
	getAppointmentHandler "github.com/timenest/timenest-api/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/timenest/timenest-api/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/timenest/timenest-api/internal/api/handlers/get_user_appointments"
	listAvailabilityHandler "github.com/timenest/timenest-api/internal/api/handlers/list_availability"
	zoomAuthorizeHandler "github.com/timenest/timenest-api/internal/api/handlers/zoom_authorize"
	zoomCallbackHandler "github.com/timenest/timenest-api/internal/api/handlers/zoom_callback"
	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/config"
	slotsCache "github.com/timenest/timenest-api/internal/infra/cache/slots"
	appointmentRepo "github.com/timenest/timenest-api/internal/infra/storage/appointment"
	availabilityRepo "github.com/timenest/timenest-api/internal/infra/storage/availability"
	meetingTokenRepo "github.com/timenest/timenest-api/internal/infra/storage/meetingtoken"
	"github.com/timenest/timenest-api/internal/integrations/zoom"
	appointmentsService "github.com/timenest/timenest-api/internal/service/appointments"
	availabilityService "github.com/timenest/timenest-api/internal/service/availability"
	meetingsService "github.com/timenest/timenest-api/internal/service/meetings"
	scheduleService "github.com/timenest/timenest-api/internal/service/schedule"
	"github.com/timenest/timenest-api/internal/service/slots"
	createAppointmentUC "github.com/timenest/timenest-api/internal/usecase/create_appointment"
	createAvailabilityUC "github.com/timenest/timenest-api/internal/usecase/create_availability"
	getAvailableSlotsUC "github.com/timenest/timenest-api/internal/usecase/get_available_slots"
	migrator "github.com/timenest/timenest-api/migrator/postgres"
	"github.com/timenest/timenest-api/pkg/cache"
	"github.com/timenest/timenest-api/pkg/dbmetrics"
	"github.com/timenest/timenest-api/pkg/logger"
	"github.com/timenest/timenest-api/pkg/metrics"
	"github.com/timenest/timenest-api/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting TimeNest scheduling service...")
	log.Info("Configuration loaded from %s", configPath)

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := migrator.Migrate(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Обёртка с метриками запросов; без метрик коллектор nil и ничего не пишет
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Кэш слотов (Redis); без Redis кэш выключен
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Warn("Redis unavailable at %s, slots cache disabled: %v", cfg.Cache.Addr, err)
			redisClient = nil
		} else {
			log.Info("Slots cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
		}
	}
	slotCache := slotsCache.NewCache(redisClient, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	defer slotCache.Close()

	// Репозитории и менеджер транзакций
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	tokenRepository := meetingTokenRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграция с Zoom
	zoomClient := zoom.NewClient(zoom.Config{
		ClientID:     cfg.Zoom.ClientID,
		ClientSecret: cfg.Zoom.ClientSecret,
		RedirectURL:  cfg.Zoom.RedirectURL,
		AuthURL:      cfg.Zoom.AuthURL,
		TokenURL:     cfg.Zoom.TokenURL,
		APIBaseURL:   cfg.Zoom.APIBaseURL,
		Timeout:      time.Duration(cfg.Zoom.Timeout) * time.Second,
	}, log)
	if zoomClient.Configured() {
		log.Info("Zoom integration configured (redirect=%s)", cfg.Zoom.RedirectURL)
	} else {
		log.Warn("Zoom integration is not configured, meeting endpoints will return 503")
	}

	// Вычисление слотов
	location, err := cfg.Slots.Location()
	if err != nil {
		log.Fatal("Invalid slots timezone: %v", err)
	}
	resolver := slots.NewResolver(slots.Options{
		Location:  location,
		HidePast:  cfg.Slots.HidePast,
		MinNotice: time.Duration(cfg.Slots.MinNoticeMinutes) * time.Minute,
	})
	horizon := slots.Horizon{Months: cfg.Slots.HorizonMonths}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(availabilityRepository, appointmentRepository, resolver, horizon, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, slotCache, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, slotCache, txMgr, log)
	meetingsSvc := meetingsService.NewService(
		tokenRepository,
		zoomClient,
		cfg.Zoom.StateSecret,
		meetingsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	var bookingMeetings createAppointmentUC.MeetingService
	if cfg.Zoom.CreateOnBooking && zoomClient.Configured() {
		bookingMeetings = meetingsSvc
		log.Info("Zoom meetings will be created on booking")
	}

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(scheduleSvc, slotCache, metricsCollector, log)
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(availabilityRepository, slotCache, txMgr, location, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleSvc,
		bookingMeetings,
		slotCache,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	zoomAuthorize := zoomAuthorizeHandler.NewHandler(meetingsSvc, log)
	zoomCallback := zoomCallbackHandler.NewHandler(meetingsSvc, cfg.Zoom.SuccessRedirect, log)
	createMeeting := createMeetingHandler.NewHandler(meetingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.jwt_secret is empty: X-User-ID header is trusted (development mode)")
	}
	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Свободные слоты пользователя
	api.HandleFunc("/users/{userId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Правила доступности пользователя
	api.HandleFunc("/users/{userId}/availability", listAvailability.Handle).Methods(http.MethodGet)

	// OAuth redirect от Zoom
	api.HandleFunc("/zoom/callback", zoomCallback.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Доступность ---
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{ruleId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Встречи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Zoom ---
	protected.HandleFunc("/zoom/authorize", zoomAuthorize.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/meetings", createMeeting.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
