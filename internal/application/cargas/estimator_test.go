package cargas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// estimadorComPredictor monta um estimador com o preditor informado (nil
// desativa a assistência) e repositórios fake controláveis.
func estimadorComPredictor(p cargas.Predictor, regras map[string]int, historico *fakeHistoricoRepo, notas *fakeNotaRepo) *cargas.Estimator {
	log := testLogger()
	if historico == nil {
		historico = &fakeHistoricoRepo{
			similar: map[string]*entity.HistoricoDivisao{},
			average: map[string]*entity.HistoricoDivisao{},
		}
	}
	if notas == nil {
		notas = newFakeNotaRepo()
	}
	return cargas.NewEstimator(
		p,
		cargas.NewRuleStore(&fakeRegraRepo{regras: regras}, log),
		cargas.NewPatternMatcher(historico, log),
		notas,
		cargas.DefaultLimits(),
		log,
	)
}

func TestEstimator_PredicaoConfiavelCurtoCircuita(t *testing.T) {
	sete := 7
	p := &fakePredictor{pred: &cargas.Prediction{ID: "p1", Cargas: &sete, Confianca: 0.82, Metodo: entity.PredicaoMetodoHeuristica}}
	e := estimadorComPredictor(p, map[string]int{}, nil, nil)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"), []*entity.NotaItem{itemTeste("i1", "4411", "10", "20", "0.5", "100")})

	assert.Equal(t, 7, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorPredicao, est.Metodo)
	require.NotNil(t, est.Predicao)
	assert.Equal(t, "p1", est.Predicao.ID, "o ID da predição precisa chegar ao chamador")
}

func TestEstimator_PredicaoAbaixoDoCorteCaiParaRestricoes(t *testing.T) {
	tres := 3
	p := &fakePredictor{pred: &cargas.Prediction{ID: "p1", Cargas: &tres, Confianca: 0.45}}
	e := estimadorComPredictor(p, map[string]int{}, nil, nil)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"), []*entity.NotaItem{itemTeste("i1", "4411", "10", "20", "0.5", "100")})

	// Item único sem regra nem histórico: 1 carga pela contagem de restrições.
	assert.Equal(t, 1, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorRestricoes, est.Metodo)
	assert.NotNil(t, est.Predicao, "a predição rejeitada continua disponível para o ciclo de feedback")
}

func TestEstimator_ErroDePredicaoNaoBloqueia(t *testing.T) {
	p := &fakePredictor{err: errors.New("serviço fora do ar")}
	e := estimadorComPredictor(p, map[string]int{}, nil, nil)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"), []*entity.NotaItem{itemTeste("i1", "4411", "10", "20", "0.5", "100")})

	assert.Equal(t, 1, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorRestricoes, est.Metodo)
}

// Cenário A: produto especial "6000" com quantidade 5 contribui com
// exatamente 5 cargas unitárias.
func TestEstimator_CenarioA_ProdutoEspecial(t *testing.T) {
	e := estimadorComPredictor(nil, map[string]int{"6000": 1}, nil, nil)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"),
		[]*entity.NotaItem{itemTeste("i1", "6000", "5", "3000", "8", "12000")})

	assert.Equal(t, 5, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorRestricoes, est.Metodo)
}

// Cenário B: produto "9675" com quantidade 14 e histórico de 5 por carga
// contribui com ceil(14/5) = 3 cargas.
func TestEstimator_CenarioB_HistoricoDefineContribuicao(t *testing.T) {
	historico := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadePorCarga: 5, Frequencia: 3},
		},
		average: map[string]*entity.HistoricoDivisao{},
	}
	e := estimadorComPredictor(nil, map[string]int{}, historico, nil)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"),
		[]*entity.NotaItem{itemTeste("i2", "9675", "14", "150", "0.4", "890")})

	assert.Equal(t, 3, est.Cargas)
}

// Cenário C: os dois itens acima somam 5 + 3 = 8 cargas.
func TestEstimator_CenarioC_SomaDasContribuicoes(t *testing.T) {
	historico := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadePorCarga: 5, Frequencia: 3},
		},
		average: map[string]*entity.HistoricoDivisao{},
	}
	e := estimadorComPredictor(nil, map[string]int{"6000": 1}, historico, nil)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"), []*entity.NotaItem{
		itemTeste("i1", "6000", "5", "3000", "8", "12000"),
		itemTeste("i2", "9675", "14", "150", "0.4", "890"),
	})

	assert.Equal(t, 8, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorRestricoes, est.Metodo)
}

// Cenário D: sem dados de item, a heurística de capacidade decide:
// max(ceil(60000/25000), ceil(10/80), ceil(100000/500000), 1) = 3.
func TestEstimator_CenarioD_HeuristicaDeCapacidade(t *testing.T) {
	e := estimadorComPredictor(nil, map[string]int{}, nil, nil)

	nota := notaTeste("n1")
	nota.PesoTotal = dec("60000")
	nota.VolumeTotal = dec("10")
	nota.ValorTotal = dec("100000")

	est := e.SuggestCargas(context.Background(), nota, nil)

	assert.Equal(t, 3, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorCapacidade, est.Metodo)
}

func TestEstimator_CapacidadePorValorVence(t *testing.T) {
	e := estimadorComPredictor(nil, map[string]int{}, nil, nil)

	nota := notaTeste("n1")
	nota.PesoTotal = dec("1000")
	nota.VolumeTotal = dec("5")
	nota.ValorTotal = dec("1200000") // ceil(1200000/500000) = 3

	est := e.SuggestCargas(context.Background(), nota, nil)
	assert.Equal(t, 3, est.Cargas)
}

func TestEstimator_BuscaItensQuandoNaoInformados(t *testing.T) {
	notas := newFakeNotaRepo()
	notas.itens["n1"] = []*entity.NotaItem{itemTeste("i1", "6000", "2", "3000", "8", "12000")}
	e := estimadorComPredictor(nil, map[string]int{"6000": 1}, nil, notas)

	est := e.SuggestCargas(context.Background(), notaTeste("n1"), nil)

	assert.Equal(t, 2, est.Cargas)
	assert.Equal(t, cargas.EstimativaPorRestricoes, est.Metodo)
}

// Monotonicidade do fallback: produto sem histórico contribui com exatamente
// 1 carga, qualquer que seja a quantidade.
func TestEstimator_SemHistoricoContribuicaoEhUm(t *testing.T) {
	e := estimadorComPredictor(nil, map[string]int{}, nil, nil)

	for _, qtd := range []string{"1", "14", "500", "99999"} {
		est := e.SuggestCargas(context.Background(), notaTeste("n1"),
			[]*entity.NotaItem{itemTeste("i1", "8888", qtd, "1", "0.01", "10")})
		assert.Equal(t, 1, est.Cargas, "quantidade %s", qtd)
	}
}

// Estimativa idempotente: mesmas entradas, mesmo resultado.
func TestEstimator_Idempotente(t *testing.T) {
	historico := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadePorCarga: 5, Frequencia: 3},
		},
		average: map[string]*entity.HistoricoDivisao{},
	}
	e := estimadorComPredictor(nil, map[string]int{"6000": 1}, historico, nil)
	itens := []*entity.NotaItem{
		itemTeste("i1", "6000", "5", "3000", "8", "12000"),
		itemTeste("i2", "9675", "14", "150", "0.4", "890"),
	}

	primeira := e.SuggestCargas(context.Background(), notaTeste("n1"), itens)
	segunda := e.SuggestCargas(context.Background(), notaTeste("n1"), itens)

	assert.Equal(t, primeira.Cargas, segunda.Cargas)
	assert.Equal(t, primeira.Metodo, segunda.Metodo)
}
