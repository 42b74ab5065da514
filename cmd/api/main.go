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
	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/auth"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/notas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/romaneio"
	infrapdf "github.com/pontoComDesigner/dashboardlogcar-sub000/internal/infrastructure/pdf"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/pontoComDesigner/dashboardlogcar-sub000/internal/interfaces/http"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/config"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	notaRepo := postgres.NewNotaRepository(pool)
	cargaRepo := postgres.NewCargaRepository(pool)
	regraRepo := postgres.NewRegraRepository(pool)
	historicoRepo := postgres.NewHistoricoRepository(pool)
	predicaoRepo := postgres.NewPredicaoRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	limits := cargas.Limits{
		PesoMaxKg:    decimal.NewFromFloat(cfg.Cargas.PesoMaxKg),
		VolumeMaxM3:  decimal.NewFromFloat(cfg.Cargas.VolumeMaxM3),
		ValorMax:     decimal.NewFromFloat(cfg.Cargas.ValorMax),
		ConfiancaMin: cfg.Cargas.ConfiancaMin,
	}

	// Motor de divisão: regras → padrões → predição → estimativa → distribuição
	ruleStore := cargas.NewRuleStore(regraRepo, log)
	patterns := cargas.NewPatternMatcher(historicoRepo, log)
	predictor := cargas.NewHeuristicPredictor(ruleStore, historicoRepo, notaRepo, predicaoRepo, limits, log)
	estimator := cargas.NewEstimator(predictor, ruleStore, patterns, notaRepo, limits, log)
	distributor := cargas.NewDistributor(ruleStore, patterns, log)
	executor := cargas.NewExecutor(txRunner, notaRepo, cargaRepo, estimator, distributor, auditRepo, log)
	consulta := cargas.NewConsulta(cargaRepo)
	envio := cargas.NewEnvio(cargaRepo, auditRepo, log)

	notasUC := notas.NewUseCase(notaRepo, estimator)

	// PDF: romaneio de carga
	pdfGenerator := infrapdf.NewMarotoRomaneioGenerator()
	romaneioUC := romaneio.NewUseCase(cargaRepo, notaRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DashboardLogCar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		NotasUC:   notasUC,
		Executor:  executor,
		Consulta:  consulta,
		Envio:     envio,
		Predictor: predictor,
		Romaneio:  romaneioUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
