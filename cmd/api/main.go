package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	common_api "go-crossroads/internal/common/api"
	"go-crossroads/internal/config"
	"go-crossroads/internal/connectors"
	"go-crossroads/internal/database"
	"go-crossroads/internal/features/assistance"
	"go-crossroads/internal/features/casesearch"
	"go-crossroads/internal/features/reference"
	"go-crossroads/internal/features/reportbuilder"
	"go-crossroads/internal/features/reportconfig"
	"go-crossroads/internal/features/reportviewer"
	"go-crossroads/internal/features/system"
	"go-crossroads/internal/logger"
	"go-crossroads/internal/middleware"
	"go-crossroads/pkg/utils"

	_ "go-crossroads/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.RequestLogger(logger))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, logger *zap.Logger) {
	logger.Info("registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		logger.Debug("setting up route", zap.String("route", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.SessionSecret)
			if cfg.SkipAuth {
				logger.Warn("SKIP_AUTH is on; sessions are read from X-User-Id and X-Active-Location")
			}
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				logger.Info("server listening", zap.String("addr", port), zap.String("upstream", cfg.UpstreamBaseURL))
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// @title           Crossroads Reports API
// @version         1.0
// @description     Report builder and viewer backend for the Crossroads case-management frontend.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Log Store and Logger
			database.NewLogStore,
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Upstream case-management API
			connectors.NewHTTPBackend,
			reportconfig.NewCodec,

			// Initialize Service
			reference.NewReferenceService,
			reportbuilder.NewBuilderService,
			reportviewer.NewViewerService,
			assistance.NewAssistanceService,
			casesearch.NewCaseSearchService,

			// Initialize Controller
			reference.NewReferenceController,
			reportbuilder.NewBuilderController,
			reportviewer.NewViewerController,
			assistance.NewAssistanceController,
			casesearch.NewCaseSearchController,
			system.NewHealthController,

			// Initialize API Routes
			AsRoute(reference.NewReferenceApi),
			AsRoute(reportbuilder.NewBuilderApi),
			AsRoute(reportviewer.NewViewerApi),
			AsRoute(assistance.NewAssistanceApi),
			AsRoute(casesearch.NewCaseSearchApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
		),
	)

	app.Run()
}
