package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/dto"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/romaneio"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// CargaHandler divisão de notas em cargas, consulta, expedição e romaneio
// (protegido).
type CargaHandler struct {
	executor  *cargas.Executor
	consulta  *cargas.Consulta
	envio     *cargas.Envio
	predictor cargas.Predictor
	romaneio  *romaneio.UseCase
}

// NewCargaHandler constrói o handler de cargas.
func NewCargaHandler(
	executor *cargas.Executor,
	consulta *cargas.Consulta,
	envio *cargas.Envio,
	predictor cargas.Predictor,
	romaneioUC *romaneio.UseCase,
) *CargaHandler {
	return &CargaHandler{
		executor:  executor,
		consulta:  consulta,
		envio:     envio,
		predictor: predictor,
		romaneio:  romaneioUC,
	}
}

// Split divide a nota em cargas. Sem num_cargas o estimador decide.
// POST /api/notas/:id/dividir
func (h *CargaHandler) Split(c *fiber.Ctx) error {
	notaID := c.Params("id")
	if notaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	var in dto.SplitRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.NumCargas < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "num_cargas não pode ser negativo"})
	}
	result, err := h.executor.Split(c.Context(), notaID, in.NumCargas, GetUserID(c), in.Metodo)
	if err != nil {
		return splitError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSplitResponse(result))
}

// SplitManual cria as cargas a partir dos grupos montados pelo operador.
// POST /api/notas/:id/dividir-manual
func (h *CargaHandler) SplitManual(c *fiber.Ctx) error {
	notaID := c.Params("id")
	if notaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	var in dto.SplitManualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.Grupos) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ao menos um grupo é obrigatório"})
	}
	grupos := make([]cargas.GrupoManual, 0, len(in.Grupos))
	for _, g := range in.Grupos {
		grupo := cargas.GrupoManual{}
		for _, it := range g.Itens {
			grupo.Itens = append(grupo.Itens, cargas.ItemManual{
				NotaItemID: it.NotaItemID,
				Quantidade: it.Quantidade,
			})
		}
		grupos = append(grupos, grupo)
	}
	result, err := h.executor.SplitManual(c.Context(), notaID, grupos, GetUserID(c))
	if err != nil {
		return splitError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSplitResponse(result))
}

// ListByNota lista as cargas de uma nota.
// GET /api/notas/:id/cargas
func (h *CargaHandler) ListByNota(c *fiber.Ctx) error {
	notaID := c.Params("id")
	if notaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	list, err := h.consulta.ListByNota(c.Context(), notaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CargaResponse, 0, len(list))
	for _, carga := range list {
		out = append(out, toCargaResponse(carga))
	}
	return c.JSON(out)
}

// GetByID devolve a carga com seus itens.
// GET /api/cargas/:id
func (h *CargaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	carga, err := h.consulta.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "carga não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toCargaResponse(carga))
}

// Enviar marca a carga como expedida.
// POST /api/cargas/:id/enviar
func (h *CargaHandler) Enviar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	carga, err := h.envio.Enviar(c.Context(), id, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "carga não encontrada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SENT", Message: "a carga já foi enviada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toCargaResponse(carga))
}

// Romaneio devolve o PDF do romaneio da carga.
// GET /api/cargas/:id/romaneio
func (h *CargaHandler) Romaneio(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	pdfBytes, filename, err := h.romaneio.DownloadRomaneio(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "carga não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// PredicaoResultado registra a resposta do operador a uma sugestão.
// POST /api/predicoes/:id/resultado
func (h *CargaHandler) PredicaoResultado(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	var in dto.PredicaoFeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.predictor.RecordOutcome(c.Context(), id, in.Aceita, in.AjustadaManualmente); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "predição não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// splitError mapeia os erros da divisão para status HTTP.
func splitError(c *fiber.Ctx, err error) error {
	var valErr *domain.SplitValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.SplitErrorResponse{
			Code:       "QUANTITY_MISMATCH",
			Message:    valErr.Error(),
			NotaItemID: valErr.NotaItemID,
			Produto:    valErr.Produto,
			Esperado:   valErr.Esperado.String(),
			Recebido:   valErr.Recebido.String(),
		})
	}
	if errors.Is(err, domain.ErrNotaAlreadySplit) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SPLIT", Message: "a nota já foi dividida"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota ou item não encontrado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toSplitResponse(result *cargas.SplitResult) dto.SplitResponse {
	resp := dto.SplitResponse{
		NotaID: result.Nota.ID,
		Status: result.Nota.Status,
		Metodo: result.Metodo,
	}
	if result.Predicao != nil {
		resp.PredicaoID = result.Predicao.ID
	}
	for _, carga := range result.Cargas {
		resp.Cargas = append(resp.Cargas, toCargaResponse(carga))
	}
	return resp
}

func toCargaResponse(c *entity.Carga) dto.CargaResponse {
	resp := dto.CargaResponse{
		ID:          c.ID,
		NotaID:      c.NotaID,
		Numero:      c.Numero,
		Sequencia:   c.Sequencia,
		ClienteNome: c.ClienteNome,
		PesoTotal:   c.PesoTotal,
		VolumeTotal: c.VolumeTotal,
		ValorTotal:  c.ValorTotal,
		Status:      c.Status,
		EnviadaEm:   c.EnviadaEm,
	}
	for _, it := range c.Itens {
		resp.Itens = append(resp.Itens, dto.CargaItemResponse{
			ID:            it.ID,
			NotaItemID:    it.NotaItemID,
			CodigoProduto: it.CodigoProduto,
			Descricao:     it.Descricao,
			Unidade:       it.Unidade,
			Quantidade:    it.Quantidade,
			Peso:          it.Peso,
			Volume:        it.Volume,
			Valor:         it.Valor,
		})
	}
	return resp
}
