package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// CargaRepository define o porto de persistência de cargas e seus itens.
type CargaRepository interface {
	Create(ctx context.Context, carga *entity.Carga) error
	CreateItem(ctx context.Context, item *entity.CargaItem) error
	UpdateTotais(ctx context.Context, cargaID string, peso, volume, valor decimal.Decimal) error
	GetByID(ctx context.Context, id string) (*entity.Carga, error)
	ListByNota(ctx context.Context, notaID string) ([]*entity.Carga, error)
	CountByNota(ctx context.Context, notaID string) (int, error)
	MarkSent(ctx context.Context, id string, enviadaEm time.Time) error
}
