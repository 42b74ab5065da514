package cargas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

func TestPatternMatcher_PrefereRegistroSimilar(t *testing.T) {
	repo := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadeTotal: dec("15"), QuantidadePorCarga: 5, Frequencia: 12},
		},
		average: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadePorCarga: 8, Frequencia: 40},
		},
	}
	m := cargas.NewPatternMatcher(repo, testLogger())

	s := m.SuggestQuantidadePorCarga(context.Background(), "9675", dec("14"))
	assert.NotNil(t, s)
	assert.Equal(t, 5, s.QuantidadePorCarga, "o registro similar deve vencer a média global")
	assert.Equal(t, 12, s.Frequencia)
}

func TestPatternMatcher_CaiParaMediaSemSimilar(t *testing.T) {
	repo := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{},
		average: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadePorCarga: 8, Frequencia: 40},
		},
	}
	m := cargas.NewPatternMatcher(repo, testLogger())

	s := m.SuggestQuantidadePorCarga(context.Background(), "9675", dec("200"))
	assert.NotNil(t, s)
	assert.Equal(t, 8, s.QuantidadePorCarga)
}

func TestPatternMatcher_SemHistoricoRetornaNil(t *testing.T) {
	repo := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{},
		average: map[string]*entity.HistoricoDivisao{},
	}
	m := cargas.NewPatternMatcher(repo, testLogger())

	assert.Nil(t, m.SuggestQuantidadePorCarga(context.Background(), "0000", dec("10")))
}

func TestPatternMatcher_ErroDeConsultaViraSemSinal(t *testing.T) {
	repo := &fakeHistoricoRepo{
		errSimilar: errors.New("conexão recusada"),
	}
	m := cargas.NewPatternMatcher(repo, testLogger())

	// Política deliberada: histórico indisponível nunca bloqueia a divisão.
	assert.Nil(t, m.SuggestQuantidadePorCarga(context.Background(), "9675", dec("14")))
}

func TestPatternMatcher_ErroNaMediaViraSemSinal(t *testing.T) {
	repo := &fakeHistoricoRepo{
		similar:    map[string]*entity.HistoricoDivisao{},
		errAverage: errors.New("timeout"),
	}
	m := cargas.NewPatternMatcher(repo, testLogger())

	assert.Nil(t, m.SuggestQuantidadePorCarga(context.Background(), "9675", dec("14")))
}
