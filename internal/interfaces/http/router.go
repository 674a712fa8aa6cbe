package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	pkgjwt "github.com/jhoicas/ferreteria-api/pkg/jwt"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *inventory.ProductUseCase
	ReturnUC    *inventory.ReturnUseCase
	SaleUC      *usecase.SaleUseCase
	SearchUC    *analytics.SearchUseCase
	ReportUC    *analytics.ReportUseCase
	HealthCheck func(ctx context.Context) error // nil = siempre ok
	Verifier    *pkgjwt.Verifier                // nil = rutas de negocio sin autenticación
}

// MiddlewareConfig parámetros de los middlewares globales.
type MiddlewareConfig struct {
	CORSAllowOrigins string
	RateLimitMax     int // 0 = sin límite
	RateLimitWindow  time.Duration
	CompressionLevel int
}

// UseMiddleware registra recover, cabeceras de seguridad, CORS, compresión, rate limit y log de peticiones.
func UseMiddleware(app *fiber.App, cfg MiddlewareConfig, l *logger.Logger) {
	app.Use(recover.New())
	if l != nil {
		app.Use(RequestLogger(l))
	}
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(compress.New(compress.Config{Level: compress.Level(cfg.CompressionLevel)}))
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMIT", Message: "demasiadas peticiones, intente más tarde"})
			},
		}))
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := healthHandler(deps)
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)

	// Con Verifier (AUTH_REQUIRED) las rutas de negocio exigen Bearer Token.
	protected := api
	if deps.Verifier != nil {
		protected = api.Group("/", AuthMiddleware(deps.Verifier))
	}

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Rutas estáticas antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.SearchUC, deps.ReportUC)
	products.Get("/stats", productHandler.Stats)
	products.Get("/search", productHandler.Search)
	products.Get("/report.pdf", productHandler.ReportPDF)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC, deps.SearchUC)
	returns.Get("/stats", returnHandler.Stats)
	returns.Get("/products", returnHandler.ReturnedProducts)
	returns.Get("/", returnHandler.List)
	returns.Post("/", returnHandler.Create)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
