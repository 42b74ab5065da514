package postgres

import (
	"context"
	"fmt"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

var _ repository.RegraRepository = (*RegraRepo)(nil)

// RegraRepo implementação do porto RegraRepository sobre PostgreSQL.
type RegraRepo struct {
	q Querier
}

// NewRegraRepository constrói o adaptador de regras de produto especial.
func NewRegraRepository(q Querier) *RegraRepo {
	return &RegraRepo{q: q}
}

// GetRegras devolve max_por_carga por código, somente para os códigos que
// têm regra cadastrada.
func (r *RegraRepo) GetRegras(ctx context.Context, codigos []string) (map[string]int, error) {
	if len(codigos) == 0 {
		return map[string]int{}, nil
	}
	query := `
		SELECT codigo_produto, max_por_carga
		FROM regras_produto_especial WHERE codigo_produto = ANY($1)`
	rows, err := r.q.Query(ctx, query, codigos)
	if err != nil {
		return nil, fmt.Errorf("get regras: %w", err)
	}
	defer rows.Close()
	regras := make(map[string]int)
	for rows.Next() {
		var codigo string
		var maxPorCarga int
		if err := rows.Scan(&codigo, &maxPorCarga); err != nil {
			return nil, fmt.Errorf("scan regra: %w", err)
		}
		regras[codigo] = maxPorCarga
	}
	return regras, rows.Err()
}
