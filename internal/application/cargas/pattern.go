package cargas

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// PatternSuggestion é o sinal inferido do histórico para um produto:
// quantas unidades costumam viajar por carga e com que frequência isso
// foi observado.
type PatternSuggestion struct {
	QuantidadePorCarga int
	Frequencia         int
}

// PatternMatcher infere a quantidade típica por carga a partir do histórico
// de divisões, em dois estágios:
//
//  1. Busca um registro do mesmo produto com quantidade total na faixa
//     [0.5×alvo, 2×alvo], preferindo o mais próximo do alvo (empate: maior
//     frequência). Divisões reais parecidas valem mais que média global.
//  2. Sem registro na faixa, cai para a média de quantidade-por-carga entre
//     todos os registros do produto.
//
// Sem histórico nenhum, ou em erro de consulta, devolve nil ("sem sinal"):
// um dataset histórico ausente ou corrompido nunca bloqueia uma divisão,
// só reduz a qualidade da sugestão.
type PatternMatcher struct {
	repo repository.HistoricoRepository
	log  *logger.Logger
}

// NewPatternMatcher constrói o matcher.
func NewPatternMatcher(repo repository.HistoricoRepository, log *logger.Logger) *PatternMatcher {
	return &PatternMatcher{repo: repo, log: log}
}

// SuggestQuantidadePorCarga devolve o sinal do histórico para o produto e
// quantidade alvo, ou nil quando não há informação.
func (m *PatternMatcher) SuggestQuantidadePorCarga(ctx context.Context, codigoProduto string, quantidade decimal.Decimal) *PatternSuggestion {
	similar, err := m.repo.FindSimilar(ctx, codigoProduto, quantidade)
	if err != nil {
		m.log.Warn().Err(err).Str("produto", codigoProduto).
			Msg("consulta de histórico similar falhou; tratando como sem sinal")
		return nil
	}
	if similar != nil && similar.QuantidadePorCarga > 0 {
		return &PatternSuggestion{
			QuantidadePorCarga: similar.QuantidadePorCarga,
			Frequencia:         similar.Frequencia,
		}
	}

	media, err := m.repo.FindAverage(ctx, codigoProduto)
	if err != nil {
		m.log.Warn().Err(err).Str("produto", codigoProduto).
			Msg("consulta de média histórica falhou; tratando como sem sinal")
		return nil
	}
	if media == nil || media.QuantidadePorCarga <= 0 {
		return nil
	}
	return &PatternSuggestion{
		QuantidadePorCarga: media.QuantidadePorCarga,
		Frequencia:         media.Frequencia,
	}
}
