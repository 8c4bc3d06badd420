package main

import (
	"context"
	"time"

	appcontext "github.com/SeakMengs/ConfPortal/internal/app_context"
	"github.com/SeakMengs/ConfPortal/internal/auth"
	"github.com/SeakMengs/ConfPortal/internal/config"
	"github.com/SeakMengs/ConfPortal/internal/controller"
	"github.com/SeakMengs/ConfPortal/internal/database"
	"github.com/SeakMengs/ConfPortal/internal/env"
	filestorage "github.com/SeakMengs/ConfPortal/internal/file_storage"
	"github.com/SeakMengs/ConfPortal/internal/mailer"
	"github.com/SeakMengs/ConfPortal/internal/metrics"
	"github.com/SeakMengs/ConfPortal/internal/middleware"
	"github.com/SeakMengs/ConfPortal/internal/queue"
	ratelimiter "github.com/SeakMengs/ConfPortal/internal/rate_limiter"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"github.com/SeakMengs/ConfPortal/internal/route"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = filestorage.EnsureBucket(bucketCtx, s3, cfg.Minio.BUCKET)
	cancel()
	if err != nil {
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panic(err)
		}
	}

	var (
		registry     *prometheus.Registry
		_metrics     *metrics.Metrics
		workflowOpts []workflow.Option
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		_metrics = metrics.New(registry)
		workflowOpts = append(workflowOpts, workflow.WithMetrics(_metrics))
	}

	// Decision mails go through RabbitMQ to cmd/mail_consumer when enabled,
	// otherwise they are sent from this process.
	var notifier workflow.Notifier
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
		if err != nil {
			logger.Panic("Error connecting to RabbitMQ: ", err)
		}
		defer func() {
			if err := rabbitMQ.Close(); err != nil {
				logger.Errorf("Failed to close RabbitMQ connection: %v", err)
			}
		}()
		logger.Infof("Connected to RabbitMQ at %s:%s", cfg.RabbitMQ.HOST, cfg.RabbitMQ.PORT)
		notifier = queue.NewMailPublisher(rabbitMQ, cfg.FrontURL, logger)
	} else {
		logger.Warn("RabbitMQ disabled, decision mails are sent inline")
		notifier = queue.NewInlineMailNotifier(mailer.New(cfg, logger), cfg.FrontURL, logger)
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger)
	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Workflow:   workflow.NewService(repo, notifier, logger, workflowOpts...),
		JWTService: jwtService,
		Metrics:    _metrics,
		S3:         s3,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontURL}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.Global()...)

	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	route.Register(r, controller.NewController(&app), _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
