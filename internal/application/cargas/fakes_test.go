package cargas_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos portos de repositório, para exercitar o motor de
// divisão sem banco.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

type fakeRegraRepo struct {
	regras map[string]int
	err    error
}

func (f *fakeRegraRepo) GetRegras(_ context.Context, codigos []string) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]int)
	for _, c := range codigos {
		if m, ok := f.regras[c]; ok {
			out[c] = m
		}
	}
	return out, nil
}

type fakeHistoricoRepo struct {
	similar    map[string]*entity.HistoricoDivisao
	average    map[string]*entity.HistoricoDivisao
	freq       float64
	errSimilar error
	errAverage error
}

func (f *fakeHistoricoRepo) FindSimilar(_ context.Context, codigo string, _ decimal.Decimal) (*entity.HistoricoDivisao, error) {
	if f.errSimilar != nil {
		return nil, f.errSimilar
	}
	return f.similar[codigo], nil
}

func (f *fakeHistoricoRepo) FindAverage(_ context.Context, codigo string) (*entity.HistoricoDivisao, error) {
	if f.errAverage != nil {
		return nil, f.errAverage
	}
	return f.average[codigo], nil
}

func (f *fakeHistoricoRepo) AvgFrequencia(_ context.Context, _ []string) (float64, error) {
	return f.freq, nil
}

type fakeNotaRepo struct {
	notas     map[string]*entity.NotaFiscal
	itens     map[string][]*entity.NotaItem
	conjuntos [][]string

	statusPorNota map[string]string
	alocado       map[string]decimal.Decimal
	errItens      error
}

func newFakeNotaRepo() *fakeNotaRepo {
	return &fakeNotaRepo{
		notas:         map[string]*entity.NotaFiscal{},
		itens:         map[string][]*entity.NotaItem{},
		statusPorNota: map[string]string{},
		alocado:       map[string]decimal.Decimal{},
	}
}

func (f *fakeNotaRepo) GetByID(_ context.Context, id string) (*entity.NotaFiscal, error) {
	return f.notas[id], nil
}

func (f *fakeNotaRepo) GetItens(_ context.Context, notaID string) ([]*entity.NotaItem, error) {
	if f.errItens != nil {
		return nil, f.errItens
	}
	return f.itens[notaID], nil
}

func (f *fakeNotaRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.statusPorNota[id] = status
	return nil
}

func (f *fakeNotaRepo) UpdateItemQuantidadeAlocada(_ context.Context, itemID string, quantidade decimal.Decimal) error {
	f.alocado[itemID] = quantidade
	return nil
}

func (f *fakeNotaRepo) ListByStatus(_ context.Context, status string, _, _ int) ([]*entity.NotaFiscal, error) {
	var out []*entity.NotaFiscal
	for _, n := range f.notas {
		if n.Status == status {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotaRepo) FindProdutosDeNotasDivididas(_ context.Context, _ []string) ([][]string, error) {
	return f.conjuntos, nil
}

type fakeCargaRepo struct {
	cargas []*entity.Carga
	items  []*entity.CargaItem
	totais map[string]bool
	count  int

	failCreate     error
	failCreateItem error
}

func newFakeCargaRepo() *fakeCargaRepo {
	return &fakeCargaRepo{totais: map[string]bool{}}
}

func (f *fakeCargaRepo) Create(_ context.Context, carga *entity.Carga) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.cargas = append(f.cargas, carga)
	return nil
}

func (f *fakeCargaRepo) CreateItem(_ context.Context, item *entity.CargaItem) error {
	if f.failCreateItem != nil {
		return f.failCreateItem
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeCargaRepo) UpdateTotais(_ context.Context, cargaID string, _, _, _ decimal.Decimal) error {
	f.totais[cargaID] = true
	return nil
}

func (f *fakeCargaRepo) GetByID(_ context.Context, id string) (*entity.Carga, error) {
	for _, c := range f.cargas {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCargaRepo) ListByNota(_ context.Context, notaID string) ([]*entity.Carga, error) {
	var out []*entity.Carga
	for _, c := range f.cargas {
		if c.NotaID == notaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCargaRepo) CountByNota(_ context.Context, _ string) (int, error) {
	return f.count, nil
}

func (f *fakeCargaRepo) MarkSent(_ context.Context, id string, enviadaEm time.Time) error {
	for _, c := range f.cargas {
		if c.ID == id {
			c.Status = entity.CargaStatusSent
			c.EnviadaEm = &enviadaEm
		}
	}
	return nil
}

type fakePredicaoRepo struct {
	criadas   []*entity.PredicaoCarga
	outcomes  map[string]bool
	errCreate error
}

func newFakePredicaoRepo() *fakePredicaoRepo {
	return &fakePredicaoRepo{outcomes: map[string]bool{}}
}

func (f *fakePredicaoRepo) Create(_ context.Context, p *entity.PredicaoCarga) error {
	if f.errCreate != nil {
		return f.errCreate
	}
	f.criadas = append(f.criadas, p)
	return nil
}

func (f *fakePredicaoRepo) GetByID(_ context.Context, id string) (*entity.PredicaoCarga, error) {
	for _, p := range f.criadas {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePredicaoRepo) RecordOutcome(_ context.Context, id string, aceita, _ bool, _ time.Time) error {
	f.outcomes[id] = aceita
	return nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Register(_ context.Context, log *entity.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

// fakeTxRunner executa o callback direto sobre os fakes. Sem rollback real:
// os testes de falha verificam estado observável (status da nota), não a
// reversão das linhas.
type fakeTxRunner struct {
	nota  *fakeNotaRepo
	carga *fakeCargaRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.NotaRepository, repository.CargaRepository) error) error {
	return fn(f.nota, f.carga)
}

// fakePredictor permite controlar a sugestão nos testes do estimador.
type fakePredictor struct {
	pred     *cargas.Prediction
	err      error
	chamadas int
}

func (f *fakePredictor) Predict(_ context.Context, _ *entity.NotaFiscal, _ []*entity.NotaItem) (*cargas.Prediction, error) {
	f.chamadas++
	if f.err != nil {
		return nil, f.err
	}
	return f.pred, nil
}

func (f *fakePredictor) RecordOutcome(_ context.Context, _ string, _, _ bool) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de montagem
// ──────────────────────────────────────────────────────────────────────────────

func notaTeste(id string) *entity.NotaFiscal {
	return &entity.NotaFiscal{
		ID:            id,
		Numero:        "12345",
		ClienteNome:   "Distribuidora Paraná Ltda",
		ClienteCidade: "Curitiba",
		ClienteUF:     "PR",
		ValorTotal:    dec("100000"),
		PesoTotal:     dec("12000"),
		VolumeTotal:   dec("30"),
		Status:        entity.NotaStatusPendingSplit,
		CreatedAt:     time.Now(),
	}
}

func itemTeste(id, codigo, qtd, pesoUnit, volUnit, valorUnit string) *entity.NotaItem {
	return &entity.NotaItem{
		ID:             id,
		CodigoProduto:  codigo,
		Descricao:      "Produto " + codigo,
		Unidade:        "UN",
		Quantidade:     dec(qtd),
		ValorUnitario:  dec(valorUnit),
		PesoUnitario:   dec(pesoUnit),
		VolumeUnitario: dec(volUnit),
	}
}

// ambiente monta o motor completo sobre os fakes.
type ambiente struct {
	regras      *fakeRegraRepo
	historico   *fakeHistoricoRepo
	notas       *fakeNotaRepo
	cargasRepo  *fakeCargaRepo
	predicoes   *fakePredicaoRepo
	audit       *fakeAuditRepo
	predictor   cargas.Predictor
	estimator   *cargas.Estimator
	distributor *cargas.Distributor
	executor    *cargas.Executor
}

func novoAmbiente(t *testing.T) *ambiente {
	t.Helper()
	log := testLogger()
	a := &ambiente{
		regras:     &fakeRegraRepo{regras: map[string]int{}},
		historico:  &fakeHistoricoRepo{similar: map[string]*entity.HistoricoDivisao{}, average: map[string]*entity.HistoricoDivisao{}},
		notas:      newFakeNotaRepo(),
		cargasRepo: newFakeCargaRepo(),
		predicoes:  newFakePredicaoRepo(),
		audit:      &fakeAuditRepo{},
	}
	rules := cargas.NewRuleStore(a.regras, log)
	patterns := cargas.NewPatternMatcher(a.historico, log)
	a.predictor = cargas.NewHeuristicPredictor(rules, a.historico, a.notas, a.predicoes, cargas.DefaultLimits(), log)
	a.estimator = cargas.NewEstimator(a.predictor, rules, patterns, a.notas, cargas.DefaultLimits(), log)
	a.distributor = cargas.NewDistributor(rules, patterns, log)
	a.executor = cargas.NewExecutor(
		&fakeTxRunner{nota: a.notas, carga: a.cargasRepo},
		a.notas, a.cargasRepo, a.estimator, a.distributor, a.audit, log,
	)
	require.NotNil(t, a.executor)
	return a
}
