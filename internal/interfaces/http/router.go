package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/analytics"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/auth"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	WasteTypeUC  *usecase.WasteTypeUseCase
	CriterionUC  *usecase.CriterionUseCase
	RequestUC    *usecase.CollectionRequestUseCase
	RouteUC      *usecase.RouteUseCase
	CollectionUC *usecase.CollectionUseCase
	ReportUC     *analytics.ReportUseCase
	DashboardUC  *analytics.DashboardUseCase

	Tokens    TokenParser
	Evaluator authz.Evaluator
	Logger    *logger.Logger

	// LimiterStorage respaldo del rate limit de login/registro; nil = memoria del proceso.
	LimiterStorage fiber.Storage
	RateMax        int
	RateWindow     time.Duration

	CORSOrigins []string
	Production  bool
	SwaggerFile string
	AppName     string
}

// NewServer construye la app Fiber con los middlewares globales y todas las rutas.
func NewServer(deps RouterDeps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	errs := errorMapper{log: deps.Logger.Component("http")}

	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: fiberErrorHandler(errs),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(SecureHeaders(deps.Production))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(RequestLogger(deps.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})
	if deps.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "EcoRecolección API",
		}))
	}

	Router(app, deps, errs)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps, errs errorMapper) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.Tokens)
	guard := NewAuthorizer(deps.Evaluator, deps.Logger)
	rateLimited := loginLimiter(deps)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", rateLimited, authHandler.Register)
	authGroup.Post("/login", rateLimited, authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)
	authGroup.Get("/session", authn, authHandler.Session)
	authGroup.Post("/refresh", authn, authHandler.Refresh)

	// Users
	userHandler := NewUserHandler(deps.UserUC, errs)
	users := api.Group("/users", authn)
	users.Get("/", guard.RequireRole(authz.RoleAdmin), userHandler.List)
	users.Get("/basic/:id", guard.RequirePermission(authz.ActionRead, authz.ResourceUsers), userHandler.GetBasic)
	users.Get("/:id", guard.RequireRole(authz.RoleAdmin), userHandler.GetByID)
	users.Post("/", guard.RequirePermission(authz.ActionCreate, authz.ResourceUsers), userHandler.Create)
	users.Put("/:id", guard.RequirePermission(authz.ActionWrite, authz.ResourceUsers), userHandler.Update)
	users.Delete("/:id", guard.RequirePermission(authz.ActionDelete, authz.ResourceUsers), userHandler.Delete)
	users.Patch("/:id/role", guard.RequirePermission(authz.ActionWrite, authz.ResourceRoles), userHandler.UpdateRole)

	// Catálogo: lectura pública, escritura protegida
	wtHandler := NewWasteTypeHandler(deps.WasteTypeUC, errs)
	wasteTypes := api.Group("/waste-types")
	wasteTypes.Get("/", wtHandler.List)
	wasteTypes.Get("/categories", wtHandler.Categories)
	wasteTypes.Get("/stats", wtHandler.Stats)
	wasteTypes.Get("/:id", wtHandler.GetByID)
	wasteTypes.Get("/:id/criteria", wtHandler.Criteria)
	wasteTypes.Post("/", authn, guard.RequirePermission(authz.ActionCreate, authz.ResourceWasteTypes), wtHandler.Create)
	wasteTypes.Put("/:id", authn, guard.RequirePermission(authz.ActionWrite, authz.ResourceWasteTypes), wtHandler.Update)
	wasteTypes.Delete("/:id", authn, guard.RequirePermission(authz.ActionDelete, authz.ResourceWasteTypes), wtHandler.Delete)

	crHandler := NewCriterionHandler(deps.CriterionUC, errs)
	criteria := api.Group("/criteria")
	criteria.Get("/", crHandler.List)
	criteria.Get("/:id", crHandler.GetByID)
	criteria.Post("/associate", authn, guard.RequirePermission(authz.ActionCreate, authz.ResourceCriteria), crHandler.Associate)
	criteria.Delete("/associate/:wasteTypeId/:criterionId", authn, guard.RequirePermission(authz.ActionDelete, authz.ResourceCriteria), crHandler.Dissociate)
	criteria.Post("/", authn, guard.RequirePermission(authz.ActionCreate, authz.ResourceCriteria), crHandler.Create)
	criteria.Put("/:id", authn, guard.RequirePermission(authz.ActionWrite, authz.ResourceCriteria), crHandler.Update)
	criteria.Delete("/:id", authn, guard.RequirePermission(authz.ActionDelete, authz.ResourceCriteria), crHandler.Delete)

	// Solicitudes de recogida
	reqHandler := NewCollectionRequestHandler(deps.RequestUC, errs)
	requests := api.Group("/collection-requests", authn)
	requests.Post("/", guard.RequirePermission(authz.ActionWrite, authz.ResourceCollectionRequests), reqHandler.Create)
	requests.Get("/", guard.RequirePermission(authz.ActionRead, authz.ResourceCollectionRequests), reqHandler.List)
	requests.Patch("/:id/status", guard.RequirePermission(authz.ActionManage, authz.ResourceCollectionRequests), reqHandler.UpdateStatus)

	// Rutas y puntos
	routeHandler := NewRouteHandler(deps.RouteUC, errs)
	routes := api.Group("/routes", authn)
	routes.Get("/", guard.RequirePermission(authz.ActionRead, authz.ResourceCollectionRoutes), routeHandler.List)
	routes.Post("/", guard.RequirePermission(authz.ActionCreate, authz.ResourceCollectionRoutes), routeHandler.Create)
	routes.Patch("/points/:pointId/status", guard.RequirePermission(authz.ActionWrite, authz.ResourcePoints), routeHandler.UpdatePointStatus)
	routes.Get("/:id", guard.RequirePermission(authz.ActionRead, authz.ResourceCollectionRoutes), routeHandler.GetByID)
	routes.Patch("/:id/status", guard.RequireAnyPermission(
		authz.P(authz.ActionWrite, authz.ResourceCollectionRoutes),
		authz.P(authz.ActionWrite, authz.ResourcePoints),
	), routeHandler.UpdateStatus)

	// Recolecciones
	colHandler := NewCollectionHandler(deps.CollectionUC, errs)
	readCollections := guard.RequireAnyPermission(
		authz.P(authz.ActionRead, authz.ResourceCollections),
		authz.P(authz.ActionRead, authz.ResourceReports),
	)
	collections := api.Group("/collections", authn)
	collections.Post("/", guard.RequirePermission(authz.ActionWrite, authz.ResourceCollections), colHandler.Create)
	collections.Get("/", readCollections, colHandler.List)
	collections.Get("/:id", readCollections, colHandler.GetByID)
	collections.Patch("/:id/status", guard.RequirePermission(authz.ActionWrite, authz.ResourceCollections), colHandler.UpdateStatus)
	collections.Post("/:id/route", guard.RequireAllPermissions(
		authz.P(authz.ActionWrite, authz.ResourceCollections),
		authz.P(authz.ActionRead, authz.ResourceCollectionRoutes),
	), colHandler.AssignRoute)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC, errs)
	reports := api.Group("/reports", authn, guard.RequirePermission(authz.ActionRead, authz.ResourceReports))
	reports.Get("/mine", reportHandler.Mine)
	reports.Get("/mine/stats", reportHandler.MineStats)
	reports.Get("/mine/pdf", reportHandler.MinePDF)

	// Dashboard
	dashHandler := NewDashboardHandler(deps.DashboardUC, errs)
	dashboard := api.Group("/dashboard", authn)
	dashboard.Get("/stats", guard.RequirePermission(authz.ActionRead, authz.ResourceDashboard), dashHandler.Stats)
	dashboard.Get("/personal", dashHandler.Personal)
}

// loginLimiter limita intentos de login y registro por IP.
func loginLimiter(deps RouterDeps) fiber.Handler {
	max := deps.RateMax
	if max <= 0 {
		max = 10
	}
	window := deps.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    deps.LimiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiados intentos, intenta de nuevo más tarde",
			})
		},
	})
}

func corsOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
