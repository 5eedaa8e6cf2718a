package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/auth"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/retail-backoffice/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-backoffice/internal/interfaces/http"
	"github.com/jhoicas/retail-backoffice/pkg/config"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// storage repos y runners del backend elegido (postgres o memoria).
type storage struct {
	txRunner interface {
		billing.TxRunner
		inventory.TxRunner
	}
	reads   billing.Repos
	reports repository.ReportRepository
	users   repository.UserRepository
	db      httpRouter.Pinger
	close   func()
}

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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	ledger := inventory.NewLedger()
	customerUC := billing.NewCustomerUseCase(st.txRunner, st.reads, log.Component("customers"))
	serials := billing.NewSerialGenerator(cfg.Documents.QuotePrefix, cfg.Documents.BillingPrefix)
	lineItems := billing.NewLineItemStore(ledger)
	quoteUC := billing.NewDocumentUseCase(entity.KindQuote, st.txRunner, st.reads, customerUC, serials, lineItems, log.Component("quotes"))
	billingUC := billing.NewDocumentUseCase(entity.KindBilling, st.txRunner, st.reads, customerUC, serials, lineItems, log.Component("billings"))
	pdfUC := billing.NewPDFUseCase(st.reads, infrapdf.NewMarotoPDFGenerator())
	stockUC := inventory.NewAdjustmentUseCase(st.txRunner, ledger, st.reads.StockItems, log.Component("inventory"))
	reportUC := analytics.NewReportUseCase(st.reads.Shops, st.reports)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("admin inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Back-office API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		QuoteUC:    quoteUC,
		BillingUC:  billingUC,
		PDFUC:      pdfUC,
		CustomerUC: customerUC,
		StockUC:    stockUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		DB:         st.db,
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

// openStorage conecta a PostgreSQL (aplicando migraciones si MIGRATIONS_AUTO=true)
// o arma el almacén en memoria con datos de demo.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		store := memory.NewStore()
		memory.SeedDemo(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			txRunner: store,
			reads:    store.Reads(),
			reports:  store.Reports(),
			users:    store.Users(),
			close:    func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
		if err != nil {
			return nil, err
		}
		err = mg.Up()
		_ = mg.Close()
		if err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner: postgres.NewTxRunner(pool),
		reads:    postgres.NewRepos(pool),
		reports:  postgres.NewReportRepository(pool),
		users:    postgres.NewUserRepository(pool),
		db:       pool,
		close:    pool.Close,
	}, nil
}
