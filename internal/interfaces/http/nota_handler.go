package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/dto"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/notas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// NotaHandler consultas da fila de notas e preview de divisão (protegido).
type NotaHandler struct {
	uc *notas.UseCase
}

// NewNotaHandler constrói o handler de notas.
func NewNotaHandler(uc *notas.UseCase) *NotaHandler {
	return &NotaHandler{uc: uc}
}

// List lista notas por status (padrão: pendentes de divisão).
// GET /api/notas?status=PENDING_SPLIT&limit=20&offset=0
func (h *NotaHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", entity.NotaStatusPendingSplit)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByStatus(c.Context(), status, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID devolve a nota com seus itens.
// GET /api/notas/:id
func (h *NotaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	nota, err := h.uc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(nota)
}

// Sugestao devolve o preview de divisão: quantas cargas e por qual método.
// GET /api/notas/:id/sugestao
func (h *NotaHandler) Sugestao(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	sugestao, err := h.uc.Sugerir(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sugestao)
}
