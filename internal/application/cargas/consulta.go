package cargas

import (
	"context"
	"fmt"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

// Consulta leituras de carga para a API: detalhe e listagem por nota.
type Consulta struct {
	cargaRepo repository.CargaRepository
}

// NewConsulta constrói o caso de uso de consulta.
func NewConsulta(cargaRepo repository.CargaRepository) *Consulta {
	return &Consulta{cargaRepo: cargaRepo}
}

// Get devolve a carga com seus itens. ErrNotFound se não existe.
func (q *Consulta) Get(ctx context.Context, cargaID string) (*entity.Carga, error) {
	carga, err := q.cargaRepo.GetByID(ctx, cargaID)
	if err != nil {
		return nil, fmt.Errorf("obter carga: %w", err)
	}
	if carga == nil {
		return nil, domain.ErrNotFound
	}
	return carga, nil
}

// ListByNota devolve as cargas de uma nota em ordem de sequência.
func (q *Consulta) ListByNota(ctx context.Context, notaID string) ([]*entity.Carga, error) {
	list, err := q.cargaRepo.ListByNota(ctx, notaID)
	if err != nil {
		return nil, fmt.Errorf("listar cargas: %w", err)
	}
	return list, nil
}
