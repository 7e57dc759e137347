package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"hotelapi/internal/config"
	"hotelapi/internal/database"
	"hotelapi/internal/database/migration"
	"hotelapi/internal/events"
	"hotelapi/internal/logger"
	"hotelapi/internal/otel"
	"hotelapi/internal/repository"
	"hotelapi/internal/repository/memory"
	"hotelapi/internal/repository/mongodb"
	"hotelapi/internal/repository/postgres"
	"hotelapi/internal/seed"
	"hotelapi/internal/server"
	"hotelapi/internal/service"
	"hotelapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title                      Hotel API
// @version                    1.0
// @description                Room types and rooms backed by a document store.
// @BasePath                   /
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-API-Key
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("exiting", zap.Error(err))
	}
}

// stores is the repository pair for the selected driver plus its lifecycle hooks.
type stores struct {
	roomTypes repository.RoomTypeRepository
	rooms     repository.RoomRepository
	pinger    database.Pinger
	close     func(context.Context) error
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "hotelapi", log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}

	objStore := openStorage(ctx, cfg.MinIO, log)
	publisher := openPublisher(cfg.Kafka, log)

	roomTypeSvc := service.NewRoomTypeService(st.roomTypes, st.rooms, publisher, log)
	roomSvc := service.NewRoomService(st.rooms, st.roomTypes, objStore, publisher, log)

	if cfg.SeedFile != "" {
		if _, err := seed.LoadFile(ctx, cfg.SeedFile, roomTypeSvc, roomSvc, log); err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := server.New(server.Options{
		CORSOrigins: cfg.CORSOrigins,
		Auth:        cfg.Auth,
		Logger:      log,
		Metrics:     reg,
		Store:       st.pinger,
		RoomTypes:   roomTypeSvc,
		Rooms:       roomSvc,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	listenErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("server listening", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("stop http: %w", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("flush traces: %w", err))
	}
	if err := publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if err := st.close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("unclean shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// openStores builds the repositories for cfg.StoreDriver. Connectivity is verified in
// the background: failures are logged and the process keeps serving.
func openStores(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("init mongodb: %w", err)
		}
		go func() {
			if database.Verify(ctx, m, "mongodb", log) != nil {
				return
			}
			if err := mongodb.EnsureIndexes(ctx, m.DB); err != nil {
				log.Error("ensure mongodb indexes failed", zap.Error(err))
			}
		}()
		return &stores{
			roomTypes: mongodb.NewRoomTypeMongo(m.DB),
			rooms:     mongodb.NewRoomMongo(m.DB),
			pinger:    m,
			close:     m.Close,
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		pinger := database.PingFunc(db.PingContext)
		go func() {
			if database.Verify(ctx, pinger, "postgres", log) != nil {
				return
			}
			if err := migration.EnsureMigrated(ctx, db, log); err != nil {
				log.Error("postgres migration failed", zap.Error(err))
			}
		}()
		return &stores{
			roomTypes: postgres.NewRoomTypePostgres(db),
			rooms:     postgres.NewRoomPostgres(db),
			pinger:    pinger,
			close:     func(context.Context) error { return db.Close() },
		}, nil

	default:
		log.Warn("using in-memory store; data is lost on restart")
		return &stores{
			roomTypes: memory.NewRoomTypeMemory(),
			rooms:     memory.NewRoomMemory(),
			pinger:    database.PingFunc(func(context.Context) error { return nil }),
			close:     func(context.Context) error { return nil },
		}, nil
	}
}

// openStorage returns nil when image storage is not configured or unreachable;
// image endpoints then answer 503.
func openStorage(ctx context.Context, cfg config.MinIOConfig, log *zap.Logger) storage.Storage {
	if cfg.Endpoint == "" {
		log.Info("image storage disabled")
		return nil
	}
	s, err := storage.NewMinIO(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize object storage", zap.Error(err))
		return nil
	}
	log.Info("image storage ready", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return s
}

func openPublisher(cfg config.KafkaConfig, log *zap.Logger) events.Publisher {
	if len(cfg.Brokers) == 0 {
		return events.NewLogPublisher(log)
	}
	p, err := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
	if err != nil {
		log.Error("kafka publisher unavailable, logging events instead", zap.Error(err))
		return events.NewLogPublisher(log)
	}
	log.Info("publishing change events to kafka", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return p
}
