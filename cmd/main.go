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

	cancelAppointmentHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_available_slots"
	getHallAppointmentsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_hall_appointments"
	getHallMachinesHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_hall_machines"
	getUserAppointmentsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_user_appointments"
	updateMachineStatusHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/update_machine_status"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/appointment"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
	machineRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/machine"
	walletServiceClient "github.com/m04kA/SMC-LaundryService/internal/integrations/walletservice"
	appointmentsService "github.com/m04kA/SMC-LaundryService/internal/service/appointments"
	machinesService "github.com/m04kA/SMC-LaundryService/internal/service/machines"
	pricingService "github.com/m04kA/SMC-LaundryService/internal/service/pricing"
	schedulerService "github.com/m04kA/SMC-LaundryService/internal/service/scheduler"
	createBookingUC "github.com/m04kA/SMC-LaundryService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-LaundryService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/metrics"
	"github.com/m04kA/SMC-LaundryService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-LaundryService/pkg/txmanager"
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

	log.Info("Starting SMC-LaundryService...")
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

	// Инициализируем клиента WalletService
	walletClient := walletServiceClient.NewClient(
		cfg.WalletService.URL,
		time.Duration(cfg.WalletService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (WalletService=%s timeout=%ds)",
		cfg.WalletService.URL, cfg.WalletService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		hallRepository        *hallRepo.Repository
		machineRepository     *machineRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		hallRepository = hallRepo.NewRepository(wrappedDB)
		machineRepository = machineRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		hallRepository = hallRepo.NewRepository(db)
		machineRepository = machineRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	schedulerSvc := schedulerService.NewService(
		appointmentRepository,
		machineRepository,
		cfg.Scheduling.LookbackMinutes(),
		log,
	)
	pricingSvc := pricingService.NewService(
		hallRepository,
		machineRepository,
		cfg.Scheduling.DefaultCycleDurationMinutes,
		log,
	)
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		walletClient,
		log,
	)
	machineSvc := machinesService.NewService(
		machineRepository,
		hallRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		hallRepository,
		pricingSvc,
		schedulerSvc,
		walletClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		hallRepository,
		machineRepository,
		schedulerSvc,
		cfg.Scheduling.SlotStepMinutes,
		cfg.Scheduling.DefaultCycleDurationMinutes,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getHallAppointments := getHallAppointmentsHandler.NewHandler(appointmentSvc, log)
	getHallMachines := getHallMachinesHandler.NewHandler(machineSvc, log)
	updateMachineStatus := updateMachineStatusHandler.NewHandler(machineSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Машины прачечной
	api.HandleFunc("/halls/{hallId}/machines", getHallMachines.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	// Доступные слоты прачечной
	protected.HandleFunc("/halls/{hallId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Заявки ---
	// Создание бронирования (одна или несколько загрузок)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Заявки текущего пользователя
	protected.HandleFunc("/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// Получение заявки по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена заявки с возвратом средств
	protected.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Staff-панель ---
	// Все заявки прачечной
	protected.HandleFunc("/halls/{hallId}/appointments", getHallAppointments.Handle).Methods(http.MethodGet)

	// Обновление статуса машины
	protected.HandleFunc("/machines/{machineId}/status", updateMachineStatus.Handle).Methods(http.MethodPatch)

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
