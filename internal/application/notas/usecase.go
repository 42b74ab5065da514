package notas

import (
	"context"
	"fmt"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/dto"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

// UseCase consultas de nota fiscal para a tela de expedição: fila de notas
// pendentes, detalhe com itens e o preview de divisão.
type UseCase struct {
	notaRepo  repository.NotaRepository
	estimator *cargas.Estimator
}

// NewUseCase constrói o caso de uso de consultas.
func NewUseCase(notaRepo repository.NotaRepository, estimator *cargas.Estimator) *UseCase {
	return &UseCase{notaRepo: notaRepo, estimator: estimator}
}

// ListByStatus lista notas por status com paginação.
func (uc *UseCase) ListByStatus(ctx context.Context, status string, page dto.PageRequest) ([]dto.NotaResponse, error) {
	list, err := uc.notaRepo.ListByStatus(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}
	out := make([]dto.NotaResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotaResponse(n, nil))
	}
	return out, nil
}

// Get devolve a nota com seus itens. ErrNotFound se não existe.
func (uc *UseCase) Get(ctx context.Context, notaID string) (*dto.NotaResponse, error) {
	nota, err := uc.notaRepo.GetByID(ctx, notaID)
	if err != nil {
		return nil, fmt.Errorf("obter nota: %w", err)
	}
	if nota == nil {
		return nil, domain.ErrNotFound
	}
	itens, err := uc.notaRepo.GetItens(ctx, notaID)
	if err != nil {
		return nil, fmt.Errorf("obter itens: %w", err)
	}
	resp := toNotaResponse(nota, itens)
	return &resp, nil
}

// Sugerir roda o estimador sobre a nota e devolve o preview de divisão, sem
// persistir nada além do registro de predição.
func (uc *UseCase) Sugerir(ctx context.Context, notaID string) (*dto.SugestaoResponse, error) {
	nota, err := uc.notaRepo.GetByID(ctx, notaID)
	if err != nil {
		return nil, fmt.Errorf("obter nota: %w", err)
	}
	if nota == nil {
		return nil, domain.ErrNotFound
	}
	est := uc.estimator.SuggestCargas(ctx, nota, nil)
	resp := &dto.SugestaoResponse{
		Cargas: est.Cargas,
		Metodo: est.Metodo,
	}
	if est.Predicao != nil {
		resp.Confianca = est.Predicao.Confianca
		resp.PredicaoID = est.Predicao.ID
	}
	return resp, nil
}

func toNotaResponse(n *entity.NotaFiscal, itens []*entity.NotaItem) dto.NotaResponse {
	resp := dto.NotaResponse{
		ID:              n.ID,
		Numero:          n.Numero,
		ClienteNome:     n.ClienteNome,
		ClienteEndereco: n.ClienteEndereco,
		ClienteCidade:   n.ClienteCidade,
		ClienteUF:       n.ClienteUF,
		ValorTotal:      n.ValorTotal,
		PesoTotal:       n.PesoTotal,
		VolumeTotal:     n.VolumeTotal,
		Status:          n.Status,
	}
	for _, it := range itens {
		resp.Itens = append(resp.Itens, dto.NotaItemResponse{
			ID:                it.ID,
			CodigoProduto:     it.CodigoProduto,
			CodigoInterno:     it.CodigoInterno,
			Descricao:         it.Descricao,
			Unidade:           it.Unidade,
			Quantidade:        it.Quantidade,
			QuantidadeAlocada: it.QuantidadeAlocada,
			ValorUnitario:     it.ValorUnitario,
			PesoUnitario:      it.PesoUnitario,
			VolumeUnitario:    it.VolumeUnitario,
		})
	}
	return resp
}
