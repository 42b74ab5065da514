package cargas

import (
	"context"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// Métodos que podem ter decidido uma estimativa.
const (
	EstimativaPorPredicao   = "predicao"
	EstimativaPorRestricoes = "restricoes"
	EstimativaPorCapacidade = "capacidade"
)

// Estimate é o resultado do estimador: quantas cargas, qual fonte decidiu e,
// quando a assistência de predição participou, o registro dela (o ID precisa
// chegar ao operador para o ciclo de aceite/rejeição).
type Estimate struct {
	Cargas   int
	Metodo   string
	Predicao *Prediction
}

// Estimator sugere o número de cargas de uma nota encadeando fontes em ordem
// decrescente de qualidade de informação:
//
//  1. Assistência de predição (barata, pode errar), aceita quando a
//     confiança alcança o corte.
//  2. Contagem por restrições sobre os itens (cara, precisa).
//  3. Heurística de capacidade peso/volume/valor (sempre disponível).
type Estimator struct {
	predictor Predictor
	rules     *RuleStore
	patterns  *PatternMatcher
	notaRepo  repository.NotaRepository
	limits    Limits
	log       *logger.Logger
}

// NewEstimator constrói o estimador.
func NewEstimator(
	predictor Predictor,
	rules *RuleStore,
	patterns *PatternMatcher,
	notaRepo repository.NotaRepository,
	limits Limits,
	log *logger.Logger,
) *Estimator {
	return &Estimator{
		predictor: predictor,
		rules:     rules,
		patterns:  patterns,
		notaRepo:  notaRepo,
		limits:    limits,
		log:       log,
	}
}

// SuggestCargas devolve a estimativa (sempre ≥ 1). itens pode ser nil: o
// estimador busca os itens da nota; se nem assim houver dados de item, cai
// na heurística de capacidade.
func (e *Estimator) SuggestCargas(ctx context.Context, nota *entity.NotaFiscal, itens []*entity.NotaItem) *Estimate {
	var predicao *Prediction
	if e.predictor != nil {
		p, err := e.predictor.Predict(ctx, nota, itens)
		if err != nil {
			e.log.Warn().Err(err).Str("nota", nota.ID).Msg("assistência de predição indisponível")
		} else {
			predicao = p
			if p.Cargas != nil && p.Confianca >= e.limits.ConfiancaMin {
				return &Estimate{Cargas: max(*p.Cargas, 1), Metodo: EstimativaPorPredicao, Predicao: p}
			}
		}
	}

	if len(itens) == 0 {
		buscados, err := e.notaRepo.GetItens(ctx, nota.ID)
		if err != nil {
			e.log.Warn().Err(err).Str("nota", nota.ID).Msg("itens indisponíveis; usando heurística de capacidade")
		} else {
			itens = buscados
		}
	}

	if len(itens) > 0 {
		regras := e.rules.MaxPorCarga(ctx, codigosDistintos(itens))
		cargas := contagemPorRestricoes(ctx, itens, regras, e.patterns)
		return &Estimate{Cargas: cargas, Metodo: EstimativaPorRestricoes, Predicao: predicao}
	}

	return &Estimate{Cargas: e.porCapacidade(nota), Metodo: EstimativaPorCapacidade, Predicao: predicao}
}

// porCapacidade aplica os três limites independentes (massa, volume,
// exposição monetária); o mais restritivo (maior contagem) vence.
func (e *Estimator) porCapacidade(nota *entity.NotaFiscal) int {
	cargas := 1
	if porPeso := cargasPorCapacidade(nota.PesoTotal, e.limits.PesoMaxKg); porPeso > cargas {
		cargas = porPeso
	}
	if porVolume := cargasPorCapacidade(nota.VolumeTotal, e.limits.VolumeMaxM3); porVolume > cargas {
		cargas = porVolume
	}
	if porValor := cargasPorCapacidade(nota.ValorTotal, e.limits.ValorMax); porValor > cargas {
		cargas = porValor
	}
	return cargas
}
