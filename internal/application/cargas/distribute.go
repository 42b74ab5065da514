package cargas

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// Distributor reparte os itens de uma nota entre cargas. Round-robin após
// ordenar restrições primeiro: simples, determinístico e razoavelmente
// balanceado, sem busca de bin-packing; a restrição real (uma unidade por
// carga para produto especial) é quem dá forma ao resultado.
type Distributor struct {
	rules    *RuleStore
	patterns *PatternMatcher
	log      *logger.Logger
}

// NewDistributor constrói o distribuidor.
func NewDistributor(rules *RuleStore, patterns *PatternMatcher, log *logger.Logger) *Distributor {
	return &Distributor{rules: rules, patterns: patterns, log: log}
}

// contagemPorRestricoes calcula o número de cargas exigido pelas restrições:
// item com regra especial contribui com `quantidade` cargas de uma unidade
// (produto especial nunca compartilha carga); item comum contribui com
// ceil(quantidade / quantidadePorCarga do histórico), ou exatamente 1 carga
// quando não há sinal histórico. Piso de 1 carga no total.
func contagemPorRestricoes(ctx context.Context, itens []*entity.NotaItem, regras map[string]int, patterns *PatternMatcher) int {
	total := 0
	for _, item := range itens {
		if _, especial := regras[item.CodigoProduto]; especial {
			total += unidadesInteiras(item.Quantidade)
			continue
		}
		sugestao := patterns.SuggestQuantidadePorCarga(ctx, item.CodigoProduto, item.Quantidade)
		if sugestao == nil {
			total++
			continue
		}
		porCarga := decimal.NewFromInt(int64(sugestao.QuantidadePorCarga))
		total += int(item.Quantidade.Div(porCarga).Ceil().IntPart())
	}
	if total < 1 {
		total = 1
	}
	return total
}

// Distribute atribui cada unidade de cada item a exatamente uma carga.
// O número efetivo de cargas é max(alvo, mínimo exigido pelas restrições):
// o chamador nunca consegue pedir menos cargas do que as restrições exigem.
func (d *Distributor) Distribute(ctx context.Context, itens []*entity.NotaItem, alvoCargas int) []*entity.Carga {
	regras := d.rules.MaxPorCarga(ctx, codigosDistintos(itens))

	efetivo := contagemPorRestricoes(ctx, itens, regras, d.patterns)
	if alvoCargas > efetivo {
		efetivo = alvoCargas
	}

	// Itens restritos primeiro; dentro de cada grupo, peso unitário
	// decrescente (pesados entram primeiro, o round-robin absorve o resto).
	ordenados := make([]*entity.NotaItem, len(itens))
	copy(ordenados, itens)
	sort.SliceStable(ordenados, func(a, b int) bool {
		_, espA := regras[ordenados[a].CodigoProduto]
		_, espB := regras[ordenados[b].CodigoProduto]
		if espA != espB {
			return espA
		}
		return ordenados[a].PesoUnitario.GreaterThan(ordenados[b].PesoUnitario)
	})

	cargas := make([]*entity.Carga, efetivo)
	for i := range cargas {
		cargas[i] = &entity.Carga{
			Sequencia:   i + 1,
			Status:      entity.CargaStatusCreated,
			PesoTotal:   decimal.Zero,
			VolumeTotal: decimal.Zero,
			ValorTotal:  decimal.Zero,
		}
	}

	cursor := 0
	avancar := func() {
		cursor = (cursor + 1) % efetivo
	}

	for _, item := range ordenados {
		if _, especial := regras[item.CodigoProduto]; especial {
			// Fragmentos de uma unidade, com peso/volume/valor proporcionais
			// (inteiro ÷ quantidade). O último fragmento leva a sobra
			// fracionária para conservar a quantidade exata.
			unidades := unidadesInteiras(item.Quantidade)
			restante := item.Quantidade
			um := decimal.NewFromInt(1)
			for u := 0; u < unidades; u++ {
				qtd := um
				if restante.LessThan(um) {
					qtd = restante
				}
				cargas[cursor].AddItem(fragmento(item, qtd))
				restante = restante.Sub(qtd)
				avancar()
			}
			continue
		}
		// Item sem restrição: a linha inteira vai como um único fragmento.
		cargas[cursor].AddItem(fragmento(item, item.Quantidade))
		avancar()
	}

	d.log.Debug().Int("alvo", alvoCargas).Int("efetivo", efetivo).Int("itens", len(itens)).
		Msg("itens distribuídos em cargas")

	return cargas
}

// fragmento cria a porção de um item alocada a uma carga, com peso, volume e
// valor proporcionais à quantidade.
func fragmento(item *entity.NotaItem, quantidade decimal.Decimal) *entity.CargaItem {
	return &entity.CargaItem{
		NotaItemID:    item.ID,
		CodigoProduto: item.CodigoProduto,
		Descricao:     item.Descricao,
		Unidade:       item.Unidade,
		Quantidade:    quantidade,
		Peso:          quantidade.Mul(item.PesoUnitario),
		Volume:        quantidade.Mul(item.VolumeUnitario),
		Valor:         quantidade.Mul(item.ValorUnitario),
	}
}
