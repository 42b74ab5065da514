package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// NotaRepository define o porto de persistência de notas fiscais e seus itens.
// GetByID retorna (nil, nil) quando a nota não existe: ausência não é erro de
// infraestrutura, a camada de aplicação decide como tratá-la.
type NotaRepository interface {
	GetByID(ctx context.Context, id string) (*entity.NotaFiscal, error)
	GetItens(ctx context.Context, notaID string) ([]*entity.NotaItem, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateItemQuantidadeAlocada(ctx context.Context, itemID string, quantidade decimal.Decimal) error
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.NotaFiscal, error)

	// FindProdutosDeNotasDivididas retorna, para notas já divididas que
	// compartilham ao menos dois dos códigos informados, o conjunto de
	// códigos de produto de cada uma. Alimenta o score de similaridade
	// da predição.
	FindProdutosDeNotasDivididas(ctx context.Context, codigos []string) ([][]string, error)
}
