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

	cancelBookingHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/create_booking"
	createReviewHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/create_review"
	createServiceHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/get_booking_stats"
	getCustomerBookingsHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/get_customer_bookings"
	getServiceHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/get_service"
	getSettingsHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/get_settings"
	listReviewsHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/list_reviews"
	listServicesHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/list_services"
	moderateReviewHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/moderate_review"
	setServiceActiveHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/set_service_active"
	updateBookingStatusHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/update_service"
	updateSettingsHandler "github.com/Holding-1-at-a-time/booking-service/internal/api/handlers/update_settings"
	"github.com/Holding-1-at-a-time/booking-service/internal/api/middleware"
	"github.com/Holding-1-at-a-time/booking-service/internal/config"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/internal/infra/migrate"
	"github.com/Holding-1-at-a-time/booking-service/internal/infra/ratelimit"
	activityRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/activitylog"
	bookingRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/booking"
	reviewRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/review"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	settingsRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/settings"
	bookingsService "github.com/Holding-1-at-a-time/booking-service/internal/service/bookings"
	catalogService "github.com/Holding-1-at-a-time/booking-service/internal/service/catalog"
	reviewsService "github.com/Holding-1-at-a-time/booking-service/internal/service/reviews"
	settingsService "github.com/Holding-1-at-a-time/booking-service/internal/service/settings"
	createBookingUC "github.com/Holding-1-at-a-time/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Holding-1-at-a-time/booking-service/internal/usecase/get_available_slots"
	"github.com/Holding-1-at-a-time/booking-service/pkg/dbmetrics"
	"github.com/Holding-1-at-a-time/booking-service/pkg/logger"
	"github.com/Holding-1-at-a-time/booking-service/pkg/metrics"
	"github.com/Holding-1-at-a-time/booking-service/pkg/simpletxmanager"
	"github.com/Holding-1-at-a-time/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")

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
	if cfg.Database.Migrate {
		if err := migrate.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем rate limiter: Redis для нескольких инстансов,
	// in-memory для одного
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	maxPerWindow := int64(cfg.RateLimit.MaxPerCustomer)

	var limiter *ratelimit.Limiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		limiter, err = ratelimit.NewRedis(redisClient, maxPerWindow, window, log)
		if err != nil {
			log.Fatal("Failed to initialize redis rate limiter: %v", err)
		}
		log.Info("Rate limiter: redis store at %s, %d per %s", cfg.Redis.Addr, maxPerWindow, window)
	} else {
		limiter = ratelimit.NewMemory(maxPerWindow, window, log)
		log.Info("Rate limiter: in-memory store, %d per %s", maxPerWindow, window)
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		serviceRepository  *serviceRepo.Repository
		reviewRepository   *reviewRepo.Repository
		settingsRepository *settingsRepo.Repository
		activityRepository *activityRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// При миграции строка настроек заполняется значениями из конфигурации
	if cfg.Database.Migrate && cfg.Booking.CloseHour > 0 {
		seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := settingsRepository.Update(seedCtx, &domain.BookingSettings{
			OpenHour:           cfg.Booking.OpenHour,
			CloseHour:          cfg.Booking.CloseHour,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			ValetFee:           cfg.Booking.ValetFee,
		})
		cancel()
		if err != nil {
			log.Warn("Failed to seed booking settings from config: %v", err)
		} else {
			log.Info("Booking settings seeded: hours %d-%d, %d days ahead",
				cfg.Booking.OpenHour, cfg.Booking.CloseHour, cfg.Booking.AdvanceBookingDays)
		}
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, activityRepository, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, bookingRepository, activityRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, serviceRepository, activityRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, activityRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		settingsRepository,
		activityRepository,
		limiter,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	setServiceActive := setServiceActiveHandler.NewHandler(catalogSvc, log)
	listReviews := listReviewsHandler.NewHandler(reviewSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	moderateReview := moderateReviewHandler.NewHandler(reviewSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; capability разрешается на каждом запросе
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.AdminToken))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Создание заявки на бронирование
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Свободные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг и отзывы
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{slug}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{slug}/reviews", listReviews.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reviews", createReview.Handle).Methods(http.MethodPost)

	// Публичные настройки бронирования
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// AUTHENTICATED ROUTES (admin token или владелец по email)
	// ============================================================

	// --- Бронирования ---
	// Статистика должна регистрироваться раньше ветки {bookingId}
	api.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	api.HandleFunc("/customers/{email}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	api.HandleFunc("/admin/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	api.HandleFunc("/admin/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/admin/services/{serviceId}/active", setServiceActive.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reviews/{reviewId}", moderateReview.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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
