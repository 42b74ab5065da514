package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// HistoricoRepository define o porto de consulta ao histórico de divisões.
// Ambas as buscas retornam (nil, nil) quando não há registro para o produto.
type HistoricoRepository interface {
	// FindSimilar busca o registro do produto cuja quantidade total está na
	// faixa [0.5×qtd, 2×qtd], preferindo o mais próximo da quantidade alvo
	// (empate: maior frequência vence).
	FindSimilar(ctx context.Context, codigoProduto string, quantidade decimal.Decimal) (*entity.HistoricoDivisao, error)

	// FindAverage devolve a média de quantidade-por-carga entre todos os
	// registros do produto, arredondada ao inteiro mais próximo, junto com a
	// frequência acumulada.
	FindAverage(ctx context.Context, codigoProduto string) (*entity.HistoricoDivisao, error)

	// AvgFrequencia devolve a frequência média dos registros dos produtos
	// informados (feature da predição). Zero quando não há histórico.
	AvgFrequencia(ctx context.Context, codigos []string) (float64, error)
}
