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

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	clientsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/clients"
	completeAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	createWorkWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_work_window"
	deleteAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_appointment"
	deleteWorkWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_work_window"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getWorkWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_work_window"
	listAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_appointments"
	listWorkWindowsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_work_windows"
	servicesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/services"
	updateAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	workWindowRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/workwindow"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SchedulingService/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-SchedulingService/internal/service/clients"
	workWindowsService "github.com/m04kA/SMC-SchedulingService/internal/service/workwindows"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Переменные окружения из .env (если файл есть) перекрывают значения из TOML
	_ = godotenv.Load()

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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", *configPath)
	log.Debug("Availability defaults: duration=%d, buffer=%d, granularity=%d",
		cfg.Availability.DefaultDuration, cfg.Availability.DefaultBuffer, cfg.Availability.DefaultGranularity)

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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s, max_open_conns=%d)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.MaxOpenConns)

	// Обертка БД: метрики пишутся, только если они включены
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории
	windowRepository := workWindowRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка дня записи: Redis, если задан адрес, иначе внутри процесса
	var locker lock.Locker
	if cfg.Lock.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPassword,
			DB:       cfg.Lock.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Lock.RedisAddr, err)
		}

		locker = lock.NewRedisLocker(redisClient)
		log.Info("Booking lock: redis (addr=%s)", cfg.Lock.RedisAddr)
	} else {
		locker = lock.NewLocalLocker()
		log.Info("Booking lock: in-process")
	}

	// Инициализируем сервисы
	clientSvc := clientsService.NewService(clientRepository, appointmentRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogRepository,
		txMgr,
		locker,
		appointmentsService.LockSettings{TTL: cfg.Lock.TTL(), Wait: cfg.Lock.Wait()},
		log,
	)
	workWindowSvc := workWindowsService.NewService(windowRepository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		windowRepository,
		appointmentRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		getAvailableSlotsUC.Defaults{
			DurationMinutes:    cfg.Availability.DefaultDuration,
			BufferMinutes:      cfg.Availability.DefaultBuffer,
			GranularityMinutes: cfg.Availability.DefaultGranularity,
			Window: domain.WorkWindow{
				StartTime: cfg.Availability.WindowStart,
				EndTime:   cfg.Availability.WindowEnd,
			},
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		clientRepository,
		catalogRepository,
		txMgr,
		locker,
		createAppointmentUC.LockSettings{TTL: cfg.Lock.TTL(), Wait: cfg.Lock.Wait()},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	listWorkWindows := listWorkWindowsHandler.NewHandler(workWindowSvc, log)
	createWorkWindow := createWorkWindowHandler.NewHandler(workWindowSvc, log)
	getWorkWindow := getWorkWindowHandler.NewHandler(workWindowSvc, log)
	deleteWorkWindow := deleteWorkWindowHandler.NewHandler(workWindowSvc, log)
	clients := clientsHandler.NewHandler(clientSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.RequestsPerSecond > 0 {
		api.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerSecond, time.Second))
		log.Info("Rate limit enabled: %d req/s per IP", cfg.RateLimit.RequestsPerSecond)
	}

	// --- Свободные слоты ---
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Клиенты ---
	api.HandleFunc("/clients", clients.List).Methods(http.MethodGet)
	api.HandleFunc("/clients", clients.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients/{clientId}", clients.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}", clients.Update).Methods(http.MethodPut)
	api.HandleFunc("/clients/{clientId}", clients.Delete).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	api.HandleFunc("/services", services.List).Methods(http.MethodGet)
	api.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}", services.Get).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", services.Update).Methods(http.MethodPut)
	api.HandleFunc("/services/{serviceId}", services.Delete).Methods(http.MethodDelete)

	// --- Рабочие окна ---
	api.HandleFunc("/work-windows", listWorkWindows.Handle).Methods(http.MethodGet)
	api.HandleFunc("/work-windows", createWorkWindow.Handle).Methods(http.MethodPost)
	api.HandleFunc("/work-windows/{windowId}", getWorkWindow.Handle).Methods(http.MethodGet)
	api.HandleFunc("/work-windows/{windowId}", deleteWorkWindow.Handle).Methods(http.MethodDelete)

	// CORS оборачивает роутер целиком, чтобы preflight OPTIONS не упирался в Methods
	handler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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
