package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/auth"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/notas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/romaneio"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	NotasUC   *notas.UseCase
	Executor  *cargas.Executor
	Consulta  *cargas.Consulta
	Envio     *cargas.Envio
	Predictor cargas.Predictor
	Romaneio  *romaneio.UseCase
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operador := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	// Notas (protegido)
	notasGroup := protected.Group("/notas")
	notaHandler := NewNotaHandler(deps.NotasUC)
	cargaHandler := NewCargaHandler(deps.Executor, deps.Consulta, deps.Envio, deps.Predictor, deps.Romaneio)
	notasGroup.Get("/", notaHandler.List)
	notasGroup.Get("/:id", notaHandler.GetByID)
	notasGroup.Get("/:id/sugestao", notaHandler.Sugestao)
	notasGroup.Get("/:id/cargas", cargaHandler.ListByNota)
	notasGroup.Post("/:id/dividir", operador, cargaHandler.Split)
	notasGroup.Post("/:id/dividir-manual", operador, cargaHandler.SplitManual)

	// Cargas (protegido)
	cargasGroup := protected.Group("/cargas")
	cargasGroup.Get("/:id", cargaHandler.GetByID)
	cargasGroup.Get("/:id/romaneio", cargaHandler.Romaneio)
	cargasGroup.Post("/:id/enviar", operador, cargaHandler.Enviar)

	// Feedback de predição (protegido)
	predicoes := protected.Group("/predicoes")
	predicoes.Post("/:id/resultado", operador, cargaHandler.PredicaoResultado)
}
