package cargas

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// Prediction é o resultado da assistência de predição. Cargas é nil quando
// o preditor não tem sugestão. O ID referencia o registro auditável, para o
// operador marcar depois se aceitou ou ajustou a sugestão.
type Prediction struct {
	ID        string
	Cargas    *int
	Confianca float64
	Metodo    string
	Features  FeatureVector
}

// Predictor é a fronteira da assistência de predição. HeuristicPredictor é a
// implementação padrão; um modelo numérico treinado entra pelo mesmo porto.
type Predictor interface {
	Predict(ctx context.Context, nota *entity.NotaFiscal, itens []*entity.NotaItem) (*Prediction, error)
	RecordOutcome(ctx context.Context, predicaoID string, aceita, ajustadaManualmente bool) error
}

// HeuristicPredictor estima o número de cargas sem modelo treinado:
// max(1 + unidades de produto especial, ceil(peso/25000), ceil(volume/80)),
// com confiança derivada da qualidade dos sinais disponíveis. Toda predição
// é persistida com um ID para avaliação posterior do estimador.
type HeuristicPredictor struct {
	rules         *RuleStore
	historicoRepo repository.HistoricoRepository
	notaRepo      repository.NotaRepository
	predicaoRepo  repository.PredicaoRepository
	limits        Limits
	log           *logger.Logger
}

// NewHeuristicPredictor constrói o preditor heurístico.
func NewHeuristicPredictor(
	rules *RuleStore,
	historicoRepo repository.HistoricoRepository,
	notaRepo repository.NotaRepository,
	predicaoRepo repository.PredicaoRepository,
	limits Limits,
	log *logger.Logger,
) *HeuristicPredictor {
	return &HeuristicPredictor{
		rules:         rules,
		historicoRepo: historicoRepo,
		notaRepo:      notaRepo,
		predicaoRepo:  predicaoRepo,
		limits:        limits,
		log:           log,
	}
}

var _ Predictor = (*HeuristicPredictor)(nil)

// Predict calcula o vetor de features, aplica a heurística e persiste o
// registro auditável da sugestão.
func (p *HeuristicPredictor) Predict(ctx context.Context, nota *entity.NotaFiscal, itens []*entity.NotaItem) (*Prediction, error) {
	codigos := codigosDistintos(itens)
	regras := p.rules.MaxPorCarga(ctx, codigos)
	fv := buildFeatures(ctx, nota, itens, regras, p.historicoRepo, p.notaRepo, p.log)

	cargas := 1 + fv.UnidadesEspeciais
	if porPeso := cargasPorCapacidade(nota.PesoTotal, p.limits.PesoMaxKg); porPeso > cargas {
		cargas = porPeso
	}
	if porVolume := cargasPorCapacidade(nota.VolumeTotal, p.limits.VolumeMaxM3); porVolume > cargas {
		cargas = porVolume
	}

	confianca := p.confianca(fv)

	featuresJSON, err := json.Marshal(fv)
	if err != nil {
		return nil, fmt.Errorf("serializar features: %w", err)
	}
	registro := &entity.PredicaoCarga{
		ID:              uuid.New().String(),
		NotaID:          nota.ID,
		CargasSugeridas: cargas,
		Confianca:       confianca,
		Metodo:          entity.PredicaoMetodoHeuristica,
		Features:        featuresJSON,
		CreatedAt:       time.Now(),
	}
	if err := p.predicaoRepo.Create(ctx, registro); err != nil {
		return nil, fmt.Errorf("registrar predição: %w", err)
	}

	p.log.Debug().Str("nota", nota.ID).Int("cargas", cargas).Float64("confianca", confianca).
		Msg("predição heurística registrada")

	return &Prediction{
		ID:        registro.ID,
		Cargas:    &cargas,
		Confianca: confianca,
		Metodo:    registro.Metodo,
		Features:  fv,
	}, nil
}

// confianca pontua a sugestão conforme os sinais disponíveis, dentro de
// [0.5, 0.95]. Produto especial presente garante piso de 0.7: a contribuição
// dele é contagem direta, não inferência.
func (p *HeuristicPredictor) confianca(fv FeatureVector) float64 {
	c := 0.5
	if fv.FrequenciaHistMedia > 0 {
		c += 0.15
	}
	c += 0.15 * fv.SimilaridadeHist
	if fv.PesoTotal > 0 {
		c += 0.05
	}
	if fv.VolumeTotal > 0 {
		c += 0.05
	}
	if fv.UnidadesEspeciais > 0 && c < 0.7 {
		c = 0.7
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// RecordOutcome grava a resposta do operador sobre uma sugestão.
func (p *HeuristicPredictor) RecordOutcome(ctx context.Context, predicaoID string, aceita, ajustadaManualmente bool) error {
	return p.predicaoRepo.RecordOutcome(ctx, predicaoID, aceita, ajustadaManualmente, time.Now())
}

// codigosDistintos devolve os códigos de produto dos itens, sem repetição e
// na ordem de aparição.
func codigosDistintos(itens []*entity.NotaItem) []string {
	codigos := make([]string, 0, len(itens))
	vistos := make(map[string]bool, len(itens))
	for _, item := range itens {
		if !vistos[item.CodigoProduto] {
			vistos[item.CodigoProduto] = true
			codigos = append(codigos, item.CodigoProduto)
		}
	}
	return codigos
}
