package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/suplegear-api/docs"
	"github.com/jhoicas/suplegear-api/internal/application/auth"
	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/postgres"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/suplegear-api/internal/interfaces/http"
	"github.com/jhoicas/suplegear-api/pkg/config"
	"github.com/jhoicas/suplegear-api/pkg/jwt"
	"github.com/jhoicas/suplegear-api/pkg/logger"
	"github.com/jhoicas/suplegear-api/pkg/metrics"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
	"github.com/jhoicas/suplegear-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tokens, err := jwt.NewManager(jwt.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL(),
		RefreshTTL: cfg.JWT.RefreshTTL(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)
	authMetrics := metrics.NewAuthMetrics(registry)

	uow := postgres.NewTxRunner(pool)
	hasher := password.NewHasher(cfg.Security.BcryptCost)

	deps := httpRouter.RouterDeps{
		AuthUC:            auth.NewAuthUseCase(uow, hasher, tokens, authMetrics),
		UserUC:            usecase.NewUserUseCase(uow, hasher),
		ProductUC:         usecase.NewProductUseCase(uow),
		CategoryUC:        usecase.NewCategoryUseCase(uow),
		OrderUC:           usecase.NewOrderUseCase(uow),
		CouponUC:          usecase.NewCouponUseCase(uow),
		Guard:             auth.NewGuard(tokens),
		Pagination:        pagination.Limits{Default: cfg.Pagination.DefaultLimit, Max: cfg.Pagination.MaxLimit},
		LowStockThreshold: cfg.Catalog.LowStockThreshold,
		LoginPolicy:       httpRouter.NewRateLimitPolicy("login", cfg.RateLimit.Window(), cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginLimit),
		Logger:            log.Zerolog(),
	}

	// Redis es opcional: sin REDIS_URL el login no se limita.
	if cfg.Redis.URL != "" {
		rdb, err := redis.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		deps.RateLimiter = rdb
	} else {
		log.Warn().Msg("REDIS_URL vacío: rate limit de login deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.Metrics(httpMetrics))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Version = cfg.App.Version
	openAPI := []byte(docs.SwaggerInfo.ReadDoc())
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: openAPI,
		Path:        "docs",
		Title:       cfg.App.Name,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(openAPI)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "version": cfg.App.Version})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
