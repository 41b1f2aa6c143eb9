package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/bikeshop-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/bikeshop-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/minio"
	"github.com/DRSN-tech/bikeshop-backend/internal/pricing"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/bikeshop-backend/internal/repository/minio"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/bikeshop-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/clients"
	"github.com/DRSN-tech/bikeshop-backend/pkg/closer"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/DRSN-tech/bikeshop-backend/pkg/postgres"
	"github.com/DRSN-tech/bikeshop-backend/pkg/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout         = 10 * time.Second
	shutdownTimeout     = 10 * time.Second
	cleanupWaitTimeout  = 5 * time.Second
	kafkaTopicTimeout   = 10 * time.Second
	closerForcedTimeout = 2 * time.Second
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *cfg.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv     *v1Http.Server
	grpcSrv     *v1Grpc.GRPCServer
	worker      *kafka.OutboxWorker
	imagesInfra *minioInfra.MinioInfrastructure

	// отменяется при остановке, прерывает фоновые задачи (worker, очистка MinIO)
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp поднимает все клиенты и собирает слои. При ошибке уже открытые ресурсы закрываются.
func NewApp(c *cfg.Config, log logger.Logger) (*App, error) {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	a := &App{
		cfg:      c,
		logger:   log,
		closer:   closer.NewCloser(closerForcedTimeout),
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	if err := a.init(); err != nil {
		bgCancel()
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.closer.Close(closeCtx); cerr != nil {
			log.Warnf("close after failed init: %v", cerr)
		}
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	if a.cfg.Tracing.Enabled() {
		tp, err := tracing.InitTracer(a.cfg.Tracing.ServiceName, a.cfg.Tracing.JaegerEndpoint)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.Add("tracer", tp.Shutdown)
		a.logger.Infof("tracing enabled, exporting to %s", a.cfg.Tracing.JaegerEndpoint)
	}

	db, err := a.initPGDB()
	if err != nil {
		return err
	}
	a.closer.AddFunc("postgres", func() error {
		db.Close()
		return nil
	})

	// pgdb
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	partRepo := pgdb.NewPartRepo(db.Pool, pgdbConv.PartConverterImpl{})
	variantRepo := pgdb.NewVariantRepo(db.Pool, pgdbConv.VariantConverterImpl{})
	dependencyRepo := pgdb.NewDependencyRepo(db.Pool, pgdbConv.DependencyConverterImpl{})
	customPriceRepo := pgdb.NewCustomPriceRepo(db.Pool, pgdbConv.CustomPriceConverterImpl{})
	productImageRepo := pgdb.NewProductImageRepo(db.Pool, pgdbConv.ProductImageConverterImpl{})
	cartRepo := pgdb.NewCartRepo(db.Pool, pgdbConv.CartConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverterImpl{})
	txManager := pgdb.NewTxManager(db.Pool)

	catalog := pgdb.NewCatalog(productRepo, partRepo, variantRepo, dependencyRepo, customPriceRepo)
	engine := pricing.NewEngine(catalog,
		pricing.WithOwnershipCheck(a.cfg.Pricing.EnforceOwnership),
		pricing.WithDependencyCheck(a.cfg.Pricing.CheckDependencies),
	)

	cacheRepo, err := a.initCache()
	if err != nil {
		return err
	}

	// minio
	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.bgCtx)

	// kafka
	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		// брокер может подняться позже, outbox дождётся
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}
	a.closer.AddFunc("kafka producer", producer.Close)

	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, a.cfg.Db.DSN(), a.cfg.Kafka)
	a.closer.AddFunc("outbox worker", a.worker.Close)

	pricingUC := usecase.NewPricingUC(engine, a.logger)
	// одно поколение на все сценарии, которые сбрасывают карточки
	productCache := usecase.NewProductCache(cacheRepo)
	useCases := &usecase.UseCases{
		Products: usecase.NewProductUC(
			productRepo,
			partRepo,
			variantRepo,
			productImageRepo,
			productCache,
			a.imagesInfra,
			txManager,
			a.logger,
		),
		Parts:        usecase.NewPartUC(partRepo, productRepo, productCache, a.logger),
		Variants:     usecase.NewVariantUC(variantRepo, partRepo, productCache, a.logger),
		Dependencies: usecase.NewDependencyUC(dependencyRepo, variantRepo),
		CustomPrices: usecase.NewCustomPriceUC(customPriceRepo, variantRepo),
		Pricing:      pricingUC,
		Carts:        usecase.NewCartUC(cartRepo, outboxRepo, engine, txManager, a.logger),
	}

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(pricingUC)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.logger, a.cfg.Minio)
	router.Init(useCases)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

func (a *App) initPGDB() (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		a.logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(a.logger, postgres.DefaultMigrationsURL); err != nil {
		db.Close()
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func (a *App) initCache() (usecase.CacheRepository, error) {
	if a.cfg.Cache.Provider == "memory" {
		a.logger.Infof("using in-memory product cache (size %d)", a.cfg.Cache.Size)
		cache, err := memory.NewCacheRepo(a.cfg.Cache)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		return cache, nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddFunc("redis", redisClient.Close)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewCacheRepo(redisClient, redisConv.ProductDetailConverterImpl{}, a.cfg.Cache, a.logger), nil
}

// Run запускает серверы и outbox worker и блокируется до сигнала или фатальной ошибки сервера.
func (a *App) Run() error {
	a.worker.Start(a.bgCtx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	a.shutdown()

	return appErr
}

func (a *App) shutdown() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.logger.Warnf("gRPC server shutdown timeout")
		} else {
			a.logger.Errorf(err, "gRPC server shutdown error")
		}
	} else {
		a.logger.Infof("gRPC server stopped")
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(shutdownCtx, cleanupWaitTimeout)
	defer cleanupCancel()
	if err := a.imagesInfra.WaitForCleanup(cleanupCtx); err != nil {
		a.logger.Warnf("MinIO cleanup did not finish before shutdown, some objects may remain: %v", err)
	} else {
		a.logger.Infof("MinIO cleanup completed")
	}

	a.bgCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "failed to close resources")
	}

	a.logger.Infof("Application shutdown complete")
}
