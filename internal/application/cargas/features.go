package cargas

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// FeatureVector é o vetor de entrada da predição, serializado junto com o
// registro auditável para que cada sugestão possa ser reproduzida depois.
type FeatureVector struct {
	QtdItens             int     `json:"qtd_itens"`
	ProdutosDistintos    int     `json:"produtos_distintos"`
	PesoTotal            float64 `json:"peso_total"`
	VolumeTotal          float64 `json:"volume_total"`
	ValorTotal           float64 `json:"valor_total"`
	ParticipacaoEspecial float64 `json:"participacao_especial"` // fração dos itens com regra especial
	UnidadesEspeciais    int     `json:"unidades_especiais"`
	QuantidadeMedia      float64 `json:"quantidade_media"`
	QuantidadeDesvio     float64 `json:"quantidade_desvio"` // desvio padrão populacional
	ValorMedioPorItem    float64 `json:"valor_medio_por_item"`
	FrequenciaHistMedia  float64 `json:"frequencia_hist_media"`
	SimilaridadeHist     float64 `json:"similaridade_hist"` // 0..1 contra notas já divididas
}

// buildFeatures calcula o vetor a partir da nota, dos itens e das regras já
// resolvidas. As consultas de histórico são best-effort: em erro a feature
// correspondente fica zerada.
func buildFeatures(
	ctx context.Context,
	nota *entity.NotaFiscal,
	itens []*entity.NotaItem,
	regras map[string]int,
	historicoRepo repository.HistoricoRepository,
	notaRepo repository.NotaRepository,
	log *logger.Logger,
) FeatureVector {
	fv := FeatureVector{
		QtdItens:    len(itens),
		PesoTotal:   nota.PesoTotal.InexactFloat64(),
		VolumeTotal: nota.VolumeTotal.InexactFloat64(),
		ValorTotal:  nota.ValorTotal.InexactFloat64(),
	}
	if len(itens) == 0 {
		return fv
	}

	codigos := make([]string, 0, len(itens))
	vistos := make(map[string]bool, len(itens))
	especiais := 0
	valorItens := decimal.Zero
	quantidades := make([]float64, 0, len(itens))
	for _, item := range itens {
		if !vistos[item.CodigoProduto] {
			vistos[item.CodigoProduto] = true
			codigos = append(codigos, item.CodigoProduto)
		}
		if _, ok := regras[item.CodigoProduto]; ok {
			especiais++
			fv.UnidadesEspeciais += unidadesInteiras(item.Quantidade)
		}
		valorItens = valorItens.Add(item.ValorTotal())
		quantidades = append(quantidades, item.Quantidade.InexactFloat64())
	}
	fv.ProdutosDistintos = len(codigos)
	fv.ParticipacaoEspecial = float64(especiais) / float64(len(itens))
	fv.ValorMedioPorItem = valorItens.InexactFloat64() / float64(len(itens))
	fv.QuantidadeMedia, fv.QuantidadeDesvio = mediaEDesvio(quantidades)

	if freq, err := historicoRepo.AvgFrequencia(ctx, codigos); err != nil {
		log.Warn().Err(err).Msg("frequência histórica indisponível para as features")
	} else {
		fv.FrequenciaHistMedia = freq
	}
	fv.SimilaridadeHist = similaridadeHistorica(ctx, codigos, notaRepo, log)

	return fv
}

// mediaEDesvio devolve média e desvio padrão populacional.
func mediaEDesvio(valores []float64) (float64, float64) {
	if len(valores) == 0 {
		return 0, 0
	}
	var soma float64
	for _, v := range valores {
		soma += v
	}
	media := soma / float64(len(valores))
	var variancia float64
	for _, v := range valores {
		d := v - media
		variancia += d * d
	}
	variancia /= float64(len(valores))
	return media, math.Sqrt(variancia)
}

// similaridadeHistorica mede (0..1) o quanto a nota se parece com notas já
// divididas: maior índice de Jaccard entre o conjunto de produtos da nota e
// os conjuntos das notas passadas que compartilham ao menos dois produtos.
func similaridadeHistorica(ctx context.Context, codigos []string, notaRepo repository.NotaRepository, log *logger.Logger) float64 {
	if len(codigos) == 0 {
		return 0
	}
	conjuntos, err := notaRepo.FindProdutosDeNotasDivididas(ctx, codigos)
	if err != nil {
		log.Warn().Err(err).Msg("similaridade histórica indisponível para as features")
		return 0
	}
	atual := make(map[string]bool, len(codigos))
	for _, c := range codigos {
		atual[c] = true
	}
	var melhor float64
	for _, conjunto := range conjuntos {
		intersecao := 0
		uniao := len(atual)
		for _, c := range conjunto {
			if atual[c] {
				intersecao++
			} else {
				uniao++
			}
		}
		if intersecao < 2 || uniao == 0 {
			continue
		}
		if j := float64(intersecao) / float64(uniao); j > melhor {
			melhor = j
		}
	}
	return melhor
}

// unidadesInteiras converte a quantidade decimal de um item em unidades
// físicas inteiras (arredonda para cima frações de unidade).
func unidadesInteiras(quantidade decimal.Decimal) int {
	if quantidade.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(quantidade.Ceil().IntPart())
}
