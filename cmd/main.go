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

	createDefinitionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_definition"
	createSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_slot"
	deleteDefinitionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_definition"
	deleteSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_slot"
	deleteSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_slots"
	generateSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/generate_slots"
	getDefinitionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_definition"
	getSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_slot"
	listDefinitionsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_definitions"
	listSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_slots"
	previewSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/preview_slots"
	reserveSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reserve_slot"
	setSlotStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_slot_status"
	setSlotsStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_slots_status"
	updateDefinitionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_definition"
	updateSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	definitionRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/definition"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/accessservice"
	definitionsService "github.com/m04kA/SMC-AppointmentService/internal/service/definitions"
	slotsService "github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	generateSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
	reserveSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// slotStore объединяет то, что нужно сервису слотов, генерации и резервированию
type slotStore interface {
	slotsService.SlotRepository
	generateSlotsUC.SlotRepository
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type domainMetrics interface {
	RecordSlotsGenerated(count int)
	RecordReservation(outcome string)
}

type permissionChecker interface {
	HasPermission(ctx context.Context, userID int64, permission string) (bool, error)
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		appMetrics       domainMetrics = metrics.Noop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		appMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		definitionRepository definitionsService.DefinitionRepository
		slotRepository       slotStore
		txMgr                transactionManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		definitionRepository = store.Definitions()
		slotRepository = store.Slots()
		txMgr = txmanager.NoopTransactionManager{}
		log.Warn("Using in-memory storage, data will be lost on restart")

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

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		// Проверяем соединение
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err = wrappedDB.PingContext(pingCtx)
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		definitionRepository = definitionRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Инициализируем клиента AccessService
	var permissions permissionChecker = accessservice.AllowAll{}
	if cfg.AccessService.URL != "" {
		permissions = accessservice.NewClient(
			cfg.AccessService.URL,
			time.Duration(cfg.AccessService.Timeout)*time.Second,
			log,
		)
		log.Info("AccessService client initialized (url=%s, timeout=%ds)",
			cfg.AccessService.URL, cfg.AccessService.Timeout)
	} else {
		log.Warn("access_service.url is empty, permission checks are disabled")
	}

	// Инициализируем сервисы
	definitionSvc := definitionsService.NewService(definitionRepository, txMgr, log)
	slotSvc := slotsService.NewService(slotRepository, definitionRepository, txMgr, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		definitionRepository,
		slotRepository,
		appMetrics,
		log,
		generateSlotsUC.Options{
			Location:          location,
			MaxGenerationDays: cfg.Scheduling.MaxGenerationDays,
			InsertBatchSize:   cfg.Scheduling.InsertBatchSize,
		},
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(slotRepository, appMetrics, log)

	// Инициализируем handlers
	createDefinition := createDefinitionHandler.NewHandler(definitionSvc, log)
	listDefinitions := listDefinitionsHandler.NewHandler(definitionSvc, log)
	getDefinition := getDefinitionHandler.NewHandler(definitionSvc, log)
	updateDefinition := updateDefinitionHandler.NewHandler(definitionSvc, log)
	deleteDefinition := deleteDefinitionHandler.NewHandler(definitionSvc, log)
	previewSlots := previewSlotsHandler.NewHandler(generateSlotsUseCase, location, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, location, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	setSlotStatus := setSlotStatusHandler.NewHandler(slotSvc, log)
	setSlotsStatus := setSlotsStatusHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	deleteSlots := deleteSlotsHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, location, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (чтение)
	// ============================================================

	api.HandleFunc("/definitions", listDefinitions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/definitions/{definitionId:[0-9]+}", getDefinition.Handle).Methods(http.MethodGet)
	api.HandleFunc("/definitions/{definitionId:[0-9]+}/slots/preview", previewSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId:[0-9]+}", getSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// RESERVATION (требует X-User-ID header)
	// ============================================================

	authenticated := api.PathPrefix("").Subrouter()
	authenticated.Use(middleware.Auth)
	authenticated.HandleFunc("/slots/{slotId:[0-9]+}/reserve", reserveSlot.Handle).Methods(http.MethodPost)

	// ============================================================
	// MANAGEMENT ROUTES (X-User-ID + право в AccessService)
	// ============================================================

	manageDefinitions := api.PathPrefix("/definitions").Subrouter()
	manageDefinitions.Use(
		middleware.Auth,
		middleware.RequirePermission(permissions, accessservice.PermissionManageDefinitions, log),
	)
	manageDefinitions.HandleFunc("", createDefinition.Handle).Methods(http.MethodPost)
	manageDefinitions.HandleFunc("/{definitionId:[0-9]+}", updateDefinition.Handle).Methods(http.MethodPatch)
	manageDefinitions.HandleFunc("/{definitionId:[0-9]+}", deleteDefinition.Handle).Methods(http.MethodDelete)

	manageSlots := api.PathPrefix("").Subrouter()
	manageSlots.Use(
		middleware.Auth,
		middleware.RequirePermission(permissions, accessservice.PermissionManageSlots, log),
	)
	manageSlots.HandleFunc("/definitions/{definitionId:[0-9]+}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	manageSlots.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	manageSlots.HandleFunc("/slots/status", setSlotsStatus.Handle).Methods(http.MethodPatch)
	manageSlots.HandleFunc("/slots/delete", deleteSlots.Handle).Methods(http.MethodPost)
	manageSlots.HandleFunc("/slots/{slotId:[0-9]+}", updateSlot.Handle).Methods(http.MethodPatch)
	manageSlots.HandleFunc("/slots/{slotId:[0-9]+}/status", setSlotStatus.Handle).Methods(http.MethodPatch)
	manageSlots.HandleFunc("/slots/{slotId:[0-9]+}", deleteSlot.Handle).Methods(http.MethodDelete)

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

	log.Info("Server stopped")
}
