package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ferreteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ferreteria-api/internal/interfaces/http"
	"github.com/jhoicas/ferreteria-api/pkg/config"
	pkgjwt "github.com/jhoicas/ferreteria-api/pkg/jwt"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// stores adaptadores de persistencia del driver elegido.
type stores struct {
	txRunner   inventory.TxRunner
	categories repository.CategoryRepository
	products   repository.ProductRepository
	returns    repository.ReturnRepository
	sales      repository.SaleRepository
	saleSeq    repository.SaleSequence
	ping       func(ctx context.Context) error
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.New()
		sales := memory.NewSaleRepository(store)
		return &stores{
			txRunner:   memory.NewTxRunner(store),
			categories: memory.NewCategoryRepository(store),
			products:   memory.NewProductRepository(store),
			returns:    memory.NewReturnRepository(store),
			sales:      sales,
			saleSeq:    sales,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		txRunner:   postgres.NewTxRunner(pool),
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		returns:    postgres.NewReturnRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		saleSeq:    postgres.NewSaleSequence(pool),
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Bool("auth_required", cfg.Auth.Required).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	categoryUC := usecase.NewCategoryUseCase(st.txRunner, st.categories)
	productUC := inventory.NewProductUseCase(st.txRunner, st.products, st.categories)
	returnUC := inventory.NewReturnUseCase(st.txRunner, st.returns)
	saleUC := usecase.NewSaleUseCase(st.txRunner, st.sales, usecase.NewSequenceIDGenerator(st.saleSeq))
	searchUC := analytics.NewSearchUseCase(st.products, st.categories)

	// PDF: reporte de existencias con los mismos filtros que /products/search
	reportUC := analytics.NewReportUseCase(st.products, st.categories, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	httpRouter.UseMiddleware(app, httpRouter.MiddlewareConfig{
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		RateLimitMax:     cfg.HTTP.RateLimitMax,
		RateLimitWindow:  cfg.HTTP.RateLimitWindow,
		CompressionLevel: cfg.HTTP.CompressionLevel,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo generado)
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Ferretería API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	var verifier *pkgjwt.Verifier
	if cfg.Auth.Required {
		if verifier, err = pkgjwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer); err != nil {
			log.Fatal().Err(err).Msg("configurar verificación JWT")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		ReturnUC:    returnUC,
		SaleUC:      saleUC,
		SearchUC:    searchUC,
		ReportUC:    reportUC,
		HealthCheck: st.ping,
		Verifier:    verifier,
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
