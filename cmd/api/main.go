// @title           EcoRecolección API
// @version         1.0
// @description     API de gestión de recolección de residuos reciclables con control de acceso por roles.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/ecorecoleccion-api/docs"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/analytics"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/auth"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
	"github.com/jhoicas/ecorecoleccion-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/ecorecoleccion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ecorecoleccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ecorecoleccion-api/internal/interfaces/http"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/config"
	"github.com/jhoicas/ecorecoleccion-api/pkg/jwt"
	"github.com/jhoicas/ecorecoleccion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	// Rate limit compartido entre instancias si hay Redis; si no, memoria local.
	var limiterStorage fiber.Storage
	if cfg.Redis.Addr != "" {
		rdb, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		limiterStorage = cache.NewLimiterStorage(rdb, "ratelimit:auth:")
	}

	userRepo := postgres.NewUserRepository(pool)
	wasteTypeRepo := postgres.NewWasteTypeRepository(pool)
	criterionRepo := postgres.NewCriterionRepository(pool)
	requestRepo := postgres.NewCollectionRequestRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	app := httpRouter.NewServer(httpRouter.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(userRepo, tokens),
		UserUC:       usecase.NewUserUseCase(userRepo),
		WasteTypeUC:  usecase.NewWasteTypeUseCase(wasteTypeRepo, criterionRepo),
		CriterionUC:  usecase.NewCriterionUseCase(criterionRepo, wasteTypeRepo),
		RequestUC:    usecase.NewCollectionRequestUseCase(requestRepo),
		RouteUC:      usecase.NewRouteUseCase(routeRepo, txRunner),
		CollectionUC: usecase.NewCollectionUseCase(collectionRepo, userRepo, wasteTypeRepo, routeRepo),
		ReportUC:     analytics.NewReportUseCase(collectionRepo, userRepo, infrapdf.NewMarotoPDFGenerator()),
		DashboardUC:  analytics.NewDashboardUseCase(dashboardRepo),

		Tokens:    tokens,
		Evaluator: authz.Default,
		Logger:    log,

		LimiterStorage: limiterStorage,
		RateMax:        cfg.RateLimit.Max,
		RateWindow:     cfg.RateLimit.Window,

		CORSOrigins: cfg.HTTP.CORSOrigins,
		Production:  cfg.App.IsProduction(),
		SwaggerFile: swaggerFile(cfg.HTTP.SwaggerFile),
		AppName:     cfg.App.Name,
	})

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

// swaggerFile devuelve la ruta solo si el archivo existe; la UI de /docs es opcional.
func swaggerFile(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
