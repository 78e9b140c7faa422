package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-marketplace/internal/common/api"
	"go-marketplace/internal/config"
	"go-marketplace/internal/database"
	"go-marketplace/internal/features/auth"
	"go-marketplace/internal/features/booking"
	"go-marketplace/internal/features/favorite"
	"go-marketplace/internal/features/notification"
	"go-marketplace/internal/features/professional"
	"go-marketplace/internal/features/realtime"
	"go-marketplace/internal/features/report"
	"go-marketplace/internal/features/review"
	"go-marketplace/internal/features/system"
	"go-marketplace/internal/logger"
	"go-marketplace/internal/middleware"
	"go-marketplace/pkg/utils"

	_ "go-marketplace/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	users auth.UserRepository,
	notifications notification.NotificationRepository,
	bookings booking.BookingRepository,
	reviews review.ReviewRepository,
	professionals professional.ProfessionalRepository,
	favorites favorite.FavoriteRepository,
) {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}
	repos := map[string]indexed{
		"users":         users,
		"notifications": notifications,
		"bookings":      bookings,
		"reviews":       reviews,
		"professionals": professionals,
		"favorites":     favorites,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				for name, repo := range repos {
					if err := repo.EnsureIndexes(ctx); err != nil {
						log.Printf("Failed to ensure %s indexes: %v", name, err)
					}
				}
			}()
			return nil
		},
	})
}

// @title           Marketplace API
// @version         1.0
// @description     Services marketplace backend with real-time notifications.

// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			auth.NewUserRepository,
			notification.NewNotificationRepository,
			booking.NewBookingRepository,
			review.NewReviewRepository,
			professional.NewProfessionalRepository,
			favorite.NewFavoriteRepository,

			// Realtime layer
			realtime.NewRegistry,
			realtime.NewGateway,

			// Services
			auth.NewAuthService,
			notification.NewNotificationService,
			notification.NewScheduler,
			booking.NewBookingService,
			review.NewReviewService,
			professional.NewProfessionalService,
			favorite.NewFavoriteService,
			report.NewReportService,

			// Interface adapters to satisfy Fx
			func(g *realtime.Gateway) notification.LivePusher { return g },
			func(r professional.ProfessionalRepository) review.RatingUpdater { return r },

			// Controllers
			auth.NewAuthController,
			notification.NewNotificationController,
			booking.NewBookingController,
			review.NewReviewController,
			professional.NewProfessionalController,
			favorite.NewFavoriteController,
			report.NewReportController,

			// API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(booking.NewBookingApi),
			AsRoute(review.NewReviewApi),
			AsRoute(professional.NewProfessionalApi),
			AsRoute(favorite.NewFavoriteApi),
			AsRoute(report.NewReportApi),
			AsRoute(realtime.NewWebSocketApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler *notification.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start()
					},
					OnStop: func(ctx context.Context) error {
						return scheduler.Stop()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
