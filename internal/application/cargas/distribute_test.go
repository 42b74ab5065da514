package cargas_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

func novoDistribuidor(regras map[string]int, historico *fakeHistoricoRepo) *cargas.Distributor {
	log := testLogger()
	if historico == nil {
		historico = &fakeHistoricoRepo{
			similar: map[string]*entity.HistoricoDivisao{},
			average: map[string]*entity.HistoricoDivisao{},
		}
	}
	return cargas.NewDistributor(
		cargas.NewRuleStore(&fakeRegraRepo{regras: regras}, log),
		cargas.NewPatternMatcher(historico, log),
		log,
	)
}

// somaPorNotaItem consolida a quantidade alocada de cada item da nota entre
// todas as cargas produzidas.
func somaPorNotaItem(resultado []*entity.Carga) map[string]decimal.Decimal {
	somas := map[string]decimal.Decimal{}
	for _, carga := range resultado {
		for _, item := range carga.Itens {
			somas[item.NotaItemID] = somas[item.NotaItemID].Add(item.Quantidade)
		}
	}
	return somas
}

func TestDistribute_ProdutoEspecialViraCargasUnitarias(t *testing.T) {
	d := novoDistribuidor(map[string]int{"6000": 1}, nil)
	itens := []*entity.NotaItem{itemTeste("i1", "6000", "5", "3000", "8", "12000")}

	resultado := d.Distribute(context.Background(), itens, 1)

	// 5 unidades especiais exigem 5 cargas, mesmo com alvo 1.
	require.Len(t, resultado, 5)
	for _, carga := range resultado {
		require.Len(t, carga.Itens, 1)
		assert.True(t, carga.Itens[0].Quantidade.Equal(dec("1")),
			"produto especial nunca compartilha carga: uma unidade por carga")
		assert.True(t, carga.PesoTotal.Equal(dec("3000")))
	}
}

func TestDistribute_ConservacaoDeQuantidades(t *testing.T) {
	historico := &fakeHistoricoRepo{
		similar: map[string]*entity.HistoricoDivisao{
			"9675": {CodigoProduto: "9675", QuantidadePorCarga: 5, Frequencia: 3},
		},
		average: map[string]*entity.HistoricoDivisao{},
	}
	d := novoDistribuidor(map[string]int{"6000": 1}, historico)
	itens := []*entity.NotaItem{
		itemTeste("i1", "6000", "5", "3000", "8", "12000"),
		itemTeste("i2", "9675", "14", "150", "0.4", "890"),
		itemTeste("i3", "4411", "30", "22", "0.1", "55"),
	}

	resultado := d.Distribute(context.Background(), itens, 3)

	somas := somaPorNotaItem(resultado)
	for _, item := range itens {
		require.Contains(t, somas, item.ID)
		assert.True(t, somas[item.ID].Equal(item.Quantidade),
			"quantidade do item %s deve se conservar: esperado %s, alocado %s",
			item.ID, item.Quantidade, somas[item.ID])
	}
}

func TestDistribute_NuncaMenosQueOMinimoDasRestricoes(t *testing.T) {
	d := novoDistribuidor(map[string]int{"6000": 1}, nil)
	itens := []*entity.NotaItem{
		itemTeste("i1", "6000", "4", "3000", "8", "12000"),
		itemTeste("i2", "4411", "30", "22", "0.1", "55"),
	}

	// Mínimo: 4 cargas unitárias + 1 (sem sinal histórico) = 5.
	for _, alvo := range []int{0, 1, 3, 5} {
		resultado := d.Distribute(context.Background(), itens, alvo)
		assert.GreaterOrEqual(t, len(resultado), 5, "alvo %d não pode furar o mínimo", alvo)
	}

	// Alvo acima do mínimo é respeitado.
	resultado := d.Distribute(context.Background(), itens, 8)
	assert.Len(t, resultado, 8)
}

func TestDistribute_RoundRobinDeterministico(t *testing.T) {
	itens := []*entity.NotaItem{
		itemTeste("i1", "6000", "3", "3000", "8", "12000"),
		itemTeste("i2", "4411", "30", "22", "0.1", "55"),
		itemTeste("i3", "7001", "10", "95", "0.3", "310"),
	}
	regras := map[string]int{"6000": 1}

	a := novoDistribuidor(regras, nil).Distribute(context.Background(), itens, 4)
	b := novoDistribuidor(regras, nil).Distribute(context.Background(), itens, 4)

	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, len(a[i].Itens), len(b[i].Itens), "carga %d", i)
		for j := range a[i].Itens {
			assert.Equal(t, a[i].Itens[j].NotaItemID, b[i].Itens[j].NotaItemID)
			assert.True(t, a[i].Itens[j].Quantidade.Equal(b[i].Itens[j].Quantidade))
		}
	}
}

func TestDistribute_ItensPesadosEntramPrimeiro(t *testing.T) {
	itens := []*entity.NotaItem{
		itemTeste("leve", "4411", "30", "22", "0.1", "55"),
		itemTeste("pesado", "7001", "10", "950", "0.3", "310"),
	}
	d := novoDistribuidor(map[string]int{}, nil)

	resultado := d.Distribute(context.Background(), itens, 2)

	// Sem restrições: dois itens, duas cargas; o mais pesado abre a primeira.
	require.Len(t, resultado, 2)
	require.Len(t, resultado[0].Itens, 1)
	assert.Equal(t, "pesado", resultado[0].Itens[0].NotaItemID)
	assert.Equal(t, "leve", resultado[1].Itens[0].NotaItemID)
}

func TestDistribute_TotaisAgregadosDaCarga(t *testing.T) {
	d := novoDistribuidor(map[string]int{}, nil)
	itens := []*entity.NotaItem{itemTeste("i1", "4411", "10", "20", "0.5", "100")}

	resultado := d.Distribute(context.Background(), itens, 1)

	require.Len(t, resultado, 1)
	carga := resultado[0]
	assert.True(t, carga.PesoTotal.Equal(dec("200")))
	assert.True(t, carga.VolumeTotal.Equal(dec("5")))
	assert.True(t, carga.ValorTotal.Equal(dec("1000")))
}

func TestDistribute_QuantidadeFracionariaDeEspecialConserva(t *testing.T) {
	d := novoDistribuidor(map[string]int{"6000": 1}, nil)
	itens := []*entity.NotaItem{itemTeste("i1", "6000", "2.5", "1000", "2", "5000")}

	resultado := d.Distribute(context.Background(), itens, 1)

	// ceil(2.5) = 3 fragmentos; o último leva a sobra de 0.5.
	require.Len(t, resultado, 3)
	somas := somaPorNotaItem(resultado)
	assert.True(t, somas["i1"].Equal(dec("2.5")))
}
