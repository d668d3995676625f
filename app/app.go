package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"videoflix-service/ddd/adapter/component"
	adapterhttp "videoflix-service/ddd/adapter/http"
	applayer "videoflix-service/ddd/application/app"
	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/service"
	"videoflix-service/ddd/infrastructure/database/persistence"
	"videoflix-service/ddd/infrastructure/executor"
	"videoflix-service/ddd/infrastructure/probe"
	"videoflix-service/ddd/infrastructure/queue"
	"videoflix-service/ddd/infrastructure/storage"
	"videoflix-service/ddd/infrastructure/worker"
	"videoflix-service/pkg/config"
	"videoflix-service/pkg/kafka"
	"videoflix-service/pkg/logger"
	"videoflix-service/pkg/middleware"
	"videoflix-service/pkg/redisclient"
	"videoflix-service/pkg/registry"
	"videoflix-service/pkg/repository"
)

// Run assembles every component and blocks until shutdown.
func Run() error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewLogger(cfg)
	logger.SetGlobalLogger(log)
	defer log.Close()

	if _, err := exec.LookPath(cfg.Transcode.FFmpeg.BinaryPath); err != nil {
		logger.Warnf("ffmpeg binary %q not found on PATH, encode jobs will fail", cfg.Transcode.FFmpeg.BinaryPath)
	}

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	videoRepo := persistence.NewVideoRepository(db.Self)

	var claims gateway.JobClaims
	redisCli, err := redisclient.New(cfg.Redis)
	if err != nil {
		logger.Warnf("redis unavailable, job claim locks disabled: %v", err)
	} else {
		defer redisCli.Close()
		claims = worker.NewRedisJobClaims(redisCli, cfg.Worker.ClaimTTL)
	}

	var publisher gateway.ArtifactPublisher
	if cfg.Minio.Enabled {
		pub, err := storage.NewMinioPublisher(context.Background(), cfg.Minio)
		if err != nil {
			logger.Warnf("object storage unavailable, artifact mirroring disabled: %v", err)
		} else {
			publisher = pub
		}
	}

	prober := probe.NewFFProbe(cfg.Transcode.FFmpeg)
	encoder := executor.NewFFmpegExecutor(cfg.Transcode.FFmpeg)
	transcodeSvc := service.NewTranscodeService(videoRepo, prober, encoder, publisher, cfg.Media.Root)
	extractSvc := service.NewExtractService(videoRepo, prober, encoder, publisher, cfg.Media.Root)

	var kafkaCli *kafka.Client
	var jobQueue gateway.JobQueue
	var consumer *component.MediaJobConsumer
	memQueue := queue.NewMemoryJobQueue(cfg.Worker.QueueCapacity)
	if cfg.Kafka.Enabled {
		kafkaCli = kafka.NewClient(cfg.Kafka)
		defer kafkaCli.Close()
		if err := kafkaCli.EnsureTopic(cfg.Kafka.Topics.MediaJobs, 3, 1); err != nil {
			logger.Warnf("ensure topic %s: %v", cfg.Kafka.Topics.MediaJobs, err)
		}
		jobQueue = queue.NewKafkaJobQueue(kafkaCli, cfg.Kafka.Topics.MediaJobs)
		consumer = component.NewMediaJobConsumer(kafkaCli, cfg.Kafka, memQueue)
	}

	mediaWorker := worker.NewMediaWorker(memQueue, claims, transcodeSvc, extractSvc, cfg.Worker.MaxConcurrentTasks)
	if cfg.Worker.Enabled {
		mediaWorker.Start()
		if consumer != nil {
			consumer.Start()
		}
	}

	dispatcher := applayer.NewJobDispatcher(jobQueue)
	videoApp := applayer.NewVideoApp(videoRepo, dispatcher)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestContextMiddleware())

	streamCtrl := adapterhttp.NewStreamController(videoRepo, cfg.Media)
	videoCtrl := adapterhttp.NewVideoController(videoApp)
	adapterhttp.RegisterRoutes(engine, cfg, streamCtrl, videoCtrl)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var reg *registry.ServiceRegistry
	if cfg.ServiceRegistry.Enabled {
		reg, err = registry.NewServiceRegistry(cfg.ServiceRegistry, registerAddr(cfg))
		if err != nil {
			logger.Warnf("service registry unavailable: %v", err)
		} else if err := reg.Register(); err != nil {
			logger.Warnf("service registration failed: %v", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		logger.Infof("received signal %s, shutting down", sig)
	}

	if reg != nil {
		reg.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	if consumer != nil {
		consumer.Stop()
	}
	memQueue.Close()
	if cfg.Worker.Enabled {
		done := make(chan struct{})
		go func() {
			mediaWorker.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(cfg.Worker.ShutdownGracePeriod):
			logger.Warnf("worker shutdown grace period elapsed, exiting with jobs in flight")
		}
	}

	logger.Infof("shutdown complete")
	return nil
}

// resolveConfigPath picks the config file from CONFIG_PATH, or from the
// conventional config/{CONFIG_ENV}.yaml layout.
func resolveConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("config/%s.yaml", env)
}

// registerAddr is the address other services reach this instance on.
func registerAddr(cfg *config.Config) string {
	host := cfg.ServiceRegistry.RegisterHost
	if host == "" {
		host = cfg.Server.Host
	}
	return fmt.Sprintf("%s:%d", host, cfg.Server.Port)
}
