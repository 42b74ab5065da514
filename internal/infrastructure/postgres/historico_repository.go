package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

var _ repository.HistoricoRepository = (*HistoricoRepo)(nil)

// HistoricoRepo implementação do porto HistoricoRepository sobre PostgreSQL.
// O histórico é somente leitura para o motor; a carga dos fatos é feita pelo
// tooling de importação.
type HistoricoRepo struct {
	q Querier
}

// NewHistoricoRepository constrói o adaptador de histórico de divisões.
func NewHistoricoRepository(q Querier) *HistoricoRepo {
	return &HistoricoRepo{q: q}
}

// FindSimilar busca o registro do produto com quantidade total na faixa
// [0.5×qtd, 2×qtd], o mais próximo da quantidade alvo; empate decide pela
// maior frequência. (nil, nil) quando não há registro na faixa.
func (r *HistoricoRepo) FindSimilar(ctx context.Context, codigoProduto string, quantidade decimal.Decimal) (*entity.HistoricoDivisao, error) {
	query := `
		SELECT codigo_produto, quantidade_total, quantidade_por_carga, frequencia
		FROM historico_divisoes
		WHERE codigo_produto = $1
		  AND quantidade_total BETWEEN $2 * 0.5 AND $2 * 2
		ORDER BY abs(quantidade_total - $2), frequencia DESC
		LIMIT 1`
	var h entity.HistoricoDivisao
	err := r.q.QueryRow(ctx, query, codigoProduto, quantidade).Scan(
		&h.CodigoProduto, &h.QuantidadeTotal, &h.QuantidadePorCarga, &h.Frequencia,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find historico similar: %w", err)
	}
	return &h, nil
}

// FindAverage devolve a média de quantidade-por-carga entre todos os registros
// do produto, arredondada ao inteiro mais próximo, com a frequência acumulada.
// (nil, nil) quando o produto não tem histórico.
func (r *HistoricoRepo) FindAverage(ctx context.Context, codigoProduto string) (*entity.HistoricoDivisao, error) {
	query := `
		SELECT round(avg(quantidade_por_carga))::int, sum(frequencia)::int
		FROM historico_divisoes
		WHERE codigo_produto = $1
		HAVING count(*) > 0`
	h := entity.HistoricoDivisao{CodigoProduto: codigoProduto}
	err := r.q.QueryRow(ctx, query, codigoProduto).Scan(&h.QuantidadePorCarga, &h.Frequencia)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find historico average: %w", err)
	}
	return &h, nil
}

// AvgFrequencia devolve a frequência média dos registros dos produtos
// informados. Zero quando não há histórico.
func (r *HistoricoRepo) AvgFrequencia(ctx context.Context, codigos []string) (float64, error) {
	if len(codigos) == 0 {
		return 0, nil
	}
	query := `
		SELECT COALESCE(avg(frequencia), 0)
		FROM historico_divisoes WHERE codigo_produto = ANY($1)`
	var media float64
	err := r.q.QueryRow(ctx, query, codigos).Scan(&media)
	if err != nil {
		return 0, fmt.Errorf("avg frequencia: %w", err)
	}
	return media, nil
}
