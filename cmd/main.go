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

	createSlotsHandler "github.com/m04kA/MedDir-SlotService/internal/api/handlers/create_slots"
	deleteSlotHandler "github.com/m04kA/MedDir-SlotService/internal/api/handlers/delete_slot"
	getDoctorSlotsHandler "github.com/m04kA/MedDir-SlotService/internal/api/handlers/get_doctor_slots"
	updateSlotHandler "github.com/m04kA/MedDir-SlotService/internal/api/handlers/update_slot"
	"github.com/m04kA/MedDir-SlotService/internal/api/middleware"
	"github.com/m04kA/MedDir-SlotService/internal/config"
	slotRepo "github.com/m04kA/MedDir-SlotService/internal/infra/storage/slot"
	hospitalServiceClient "github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
	staffServiceClient "github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
	slotsService "github.com/m04kA/MedDir-SlotService/internal/service/slots"
	createSlotsUC "github.com/m04kA/MedDir-SlotService/internal/usecase/create_slots"
	updateSlotUC "github.com/m04kA/MedDir-SlotService/internal/usecase/update_slot"
	"github.com/m04kA/MedDir-SlotService/pkg/dbmetrics"
	"github.com/m04kA/MedDir-SlotService/pkg/logger"
	"github.com/m04kA/MedDir-SlotService/pkg/metrics"
	"github.com/m04kA/MedDir-SlotService/pkg/simpletxmanager"
	"github.com/m04kA/MedDir-SlotService/pkg/txmanager"
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

	log.Info("Starting MedDir-SlotService...")
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
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	hospitalClient := hospitalServiceClient.NewClient(
		cfg.HospitalService.URL,
		time.Duration(cfg.HospitalService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, HospitalService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.HospitalService.URL, cfg.HospitalService.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		slotRepository *slotRepo.Repository
		txMgr          TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(
		slotRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createSlotsUseCase := createSlotsUC.NewUseCase(
		slotRepository,
		staffClient,
		hospitalClient,
		txMgr,
		log,
	)

	updateSlotUseCase := updateSlotUC.NewUseCase(
		slotRepository,
		hospitalClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSlots := createSlotsHandler.NewHandler(createSlotsUseCase, log)
	getDoctorSlots := getDoctorSlotsHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(updateSlotUseCase, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)

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

	// Все ручки слотов работают от имени врача и требуют X-Doctor-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание слотов (один или несколько дней недели за запрос)
	protected.HandleFunc("/slots", createSlots.Handle).Methods(http.MethodPost)

	// Список слотов врача
	protected.HandleFunc("/slots", getDoctorSlots.Handle).Methods(http.MethodGet)

	// Обновление слота
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)

	// Деактивация слота
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

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
