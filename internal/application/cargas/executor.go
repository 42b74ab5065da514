package cargas

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// toleranciaConservacao é a folga aceita na conferência de quantidades
// (entradas vêm de planilhas e da UI com duas casas decimais).
var toleranciaConservacao = decimal.NewFromFloat(0.01)

// GrupoManual é um agrupamento montado pelo operador na UI (arrasta-e-solta):
// cada grupo vira uma carga. Grupos vazios são descartados em silêncio.
type GrupoManual struct {
	Itens []ItemManual
}

// ItemManual é a porção de um item da nota dentro de um grupo manual.
type ItemManual struct {
	NotaItemID string
	Quantidade decimal.Decimal
}

// SplitResult é o resultado de uma divisão bem-sucedida.
type SplitResult struct {
	Nota     *entity.NotaFiscal
	Cargas   []*entity.Carga
	Metodo   string
	Predicao *Prediction // nil na divisão manual
}

// Executor orquestra a divisão de uma nota em cargas: estima → distribui →
// persiste (automática), ou valida e persiste um agrupamento do operador
// (manual). Todas as escritas de uma divisão rodam em uma transação só, de
// modo que uma falha no meio não deixa a nota meio-dividida.
type Executor struct {
	tx          TxRunner
	notaRepo    repository.NotaRepository
	cargaRepo   repository.CargaRepository
	estimator   *Estimator
	distributor *Distributor
	auditRepo   repository.AuditRepository
	log         *logger.Logger
}

// NewExecutor constrói o executor.
func NewExecutor(
	tx TxRunner,
	notaRepo repository.NotaRepository,
	cargaRepo repository.CargaRepository,
	estimator *Estimator,
	distributor *Distributor,
	auditRepo repository.AuditRepository,
	log *logger.Logger,
) *Executor {
	return &Executor{
		tx:          tx,
		notaRepo:    notaRepo,
		cargaRepo:   cargaRepo,
		estimator:   estimator,
		distributor: distributor,
		auditRepo:   auditRepo,
		log:         log,
	}
}

// Split executa a divisão automática. cargasSolicitadas == 0 delega o número
// ao estimador; um valor positivo é respeitado como alvo (nunca abaixo do
// mínimo exigido pelas restrições). metodo vazio assume a fonte da estimativa.
func (ex *Executor) Split(ctx context.Context, notaID string, cargasSolicitadas int, operadorID, metodo string) (*SplitResult, error) {
	nota, itens, err := ex.carregarNota(ctx, notaID)
	if err != nil {
		return nil, err
	}

	var predicao *Prediction
	alvo := cargasSolicitadas
	if alvo <= 0 {
		est := ex.estimator.SuggestCargas(ctx, nota, itens)
		alvo = est.Cargas
		predicao = est.Predicao
		if metodo == "" {
			metodo = est.Metodo
		}
	} else if metodo == "" {
		metodo = "operador"
	}

	cargas := ex.distributor.Distribute(ctx, itens, alvo)

	persistidas, err := ex.persistir(ctx, nota, cargas)
	if err != nil {
		return nil, err
	}

	ex.auditar(ctx, operadorID, entity.AuditAcaoDivisaoAutomatica, nota, len(persistidas), metodo)
	ex.log.Info().Str("nota", nota.ID).Int("cargas", len(persistidas)).Str("metodo", metodo).
		Msg("nota dividida automaticamente")

	nota.Status = entity.NotaStatusSplit
	return &SplitResult{Nota: nota, Cargas: persistidas, Metodo: metodo, Predicao: predicao}, nil
}

// SplitManual valida o agrupamento do operador contra a conservação de
// quantidades (tolerância 0.01) e o persiste. A validação roda inteira antes
// de qualquer escrita, para a UI receber o item exato que não confere.
func (ex *Executor) SplitManual(ctx context.Context, notaID string, grupos []GrupoManual, operadorID string) (*SplitResult, error) {
	nota, itens, err := ex.carregarNota(ctx, notaID)
	if err != nil {
		return nil, err
	}

	porID := make(map[string]*entity.NotaItem, len(itens))
	for _, item := range itens {
		porID[item.ID] = item
	}

	alocado := make(map[string]decimal.Decimal, len(itens))
	for _, grupo := range grupos {
		for _, im := range grupo.Itens {
			item, ok := porID[im.NotaItemID]
			if !ok {
				return nil, fmt.Errorf("item %s: %w", im.NotaItemID, domain.ErrNotFound)
			}
			if im.Quantidade.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("item %s com quantidade %s: %w", item.ID, im.Quantidade, domain.ErrInvalidInput)
			}
			alocado[item.ID] = alocado[item.ID].Add(im.Quantidade)
		}
	}
	for _, item := range itens {
		soma := alocado[item.ID]
		if soma.Sub(item.Quantidade).Abs().GreaterThan(toleranciaConservacao) {
			return nil, &domain.SplitValidationError{
				NotaItemID: item.ID,
				Produto:    item.CodigoProduto,
				Esperado:   item.Quantidade,
				Recebido:   soma,
			}
		}
	}

	cargas := make([]*entity.Carga, 0, len(grupos))
	for _, grupo := range grupos {
		if len(grupo.Itens) == 0 {
			continue
		}
		carga := &entity.Carga{
			Status:      entity.CargaStatusCreated,
			PesoTotal:   decimal.Zero,
			VolumeTotal: decimal.Zero,
			ValorTotal:  decimal.Zero,
		}
		for _, im := range grupo.Itens {
			carga.AddItem(fragmento(porID[im.NotaItemID], im.Quantidade))
		}
		cargas = append(cargas, carga)
	}

	persistidas, err := ex.persistir(ctx, nota, cargas)
	if err != nil {
		return nil, err
	}

	ex.auditar(ctx, operadorID, entity.AuditAcaoDivisaoManual, nota, len(persistidas), "manual")
	ex.log.Info().Str("nota", nota.ID).Int("cargas", len(persistidas)).
		Msg("nota dividida manualmente")

	nota.Status = entity.NotaStatusSplit
	return &SplitResult{Nota: nota, Cargas: persistidas, Metodo: "manual"}, nil
}

// carregarNota busca a nota e os itens e aplica as pré-condições comuns:
// nota existente, ainda pendente de divisão e sem cargas criadas. A checagem
// de cargas existentes é um guarda de melhor esforço, não um lock; chamadas
// concorrentes para a mesma nota devem ser serializadas pelo chamador.
func (ex *Executor) carregarNota(ctx context.Context, notaID string) (*entity.NotaFiscal, []*entity.NotaItem, error) {
	nota, err := ex.notaRepo.GetByID(ctx, notaID)
	if err != nil {
		return nil, nil, fmt.Errorf("buscar nota %s: %w", notaID, err)
	}
	if nota == nil {
		return nil, nil, fmt.Errorf("nota %s: %w", notaID, domain.ErrNotFound)
	}
	if nota.Status == entity.NotaStatusSplit {
		return nil, nil, domain.ErrNotaAlreadySplit
	}
	if nota.Status != entity.NotaStatusPendingSplit {
		return nil, nil, fmt.Errorf("nota %s com status %s: %w", notaID, nota.Status, domain.ErrConflict)
	}
	if existentes, err := ex.cargaRepo.CountByNota(ctx, notaID); err == nil && existentes > 0 {
		return nil, nil, domain.ErrNotaAlreadySplit
	}

	itens, err := ex.notaRepo.GetItens(ctx, notaID)
	if err != nil {
		return nil, nil, fmt.Errorf("buscar itens da nota %s: %w", notaID, err)
	}
	if len(itens) == 0 {
		return nil, nil, fmt.Errorf("nota %s sem itens: %w", notaID, domain.ErrInvalidInput)
	}
	return nota, itens, nil
}

// persistir grava cargas, itens, totais, contabilidade de alocação e o novo
// status da nota em uma única transação. Cargas vazias são descartadas antes
// da numeração.
func (ex *Executor) persistir(ctx context.Context, nota *entity.NotaFiscal, cargas []*entity.Carga) ([]*entity.Carga, error) {
	naoVazias := make([]*entity.Carga, 0, len(cargas))
	for _, carga := range cargas {
		if len(carga.Itens) > 0 {
			naoVazias = append(naoVazias, carga)
		}
	}
	if len(naoVazias) == 0 {
		return nil, fmt.Errorf("divisão sem cargas não vazias: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	for i, carga := range naoVazias {
		carga.ID = uuid.New().String()
		carga.NotaID = nota.ID
		carga.Sequencia = i + 1
		carga.Numero = fmt.Sprintf("%s-C%02d", nota.Numero, carga.Sequencia)
		carga.ClienteNome = nota.ClienteNome
		carga.ClienteEndereco = nota.ClienteEndereco
		carga.ClienteCidade = nota.ClienteCidade
		carga.ClienteUF = nota.ClienteUF
		carga.CreatedAt = now
		carga.UpdatedAt = now
		for _, item := range carga.Itens {
			item.ID = uuid.New().String()
			item.CargaID = carga.ID
		}
	}

	err := ex.tx.Run(ctx, func(notaRepo repository.NotaRepository, cargaRepo repository.CargaRepository) error {
		alocadoPorItem := make(map[string]decimal.Decimal)
		for _, carga := range naoVazias {
			if err := cargaRepo.Create(ctx, carga); err != nil {
				return &domain.PartialWriteError{NotaID: nota.ID, Etapa: "carga", Err: err}
			}
			for _, item := range carga.Itens {
				if err := cargaRepo.CreateItem(ctx, item); err != nil {
					return &domain.PartialWriteError{NotaID: nota.ID, Etapa: "carga_item", Err: err}
				}
				alocadoPorItem[item.NotaItemID] = alocadoPorItem[item.NotaItemID].Add(item.Quantidade)
			}
			if err := cargaRepo.UpdateTotais(ctx, carga.ID, carga.PesoTotal, carga.VolumeTotal, carga.ValorTotal); err != nil {
				return &domain.PartialWriteError{NotaID: nota.ID, Etapa: "carga", Err: err}
			}
		}
		for itemID, quantidade := range alocadoPorItem {
			if err := notaRepo.UpdateItemQuantidadeAlocada(ctx, itemID, quantidade); err != nil {
				return &domain.PartialWriteError{NotaID: nota.ID, Etapa: "carga_item", Err: err}
			}
		}
		if err := notaRepo.UpdateStatus(ctx, nota.ID, entity.NotaStatusSplit); err != nil {
			return &domain.PartialWriteError{NotaID: nota.ID, Etapa: "status", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return naoVazias, nil
}

// auditar emite o evento de divisão para a trilha de auditoria. Falha de
// auditoria não desfaz a divisão já confirmada; só registra warn.
func (ex *Executor) auditar(ctx context.Context, operadorID, acao string, nota *entity.NotaFiscal, cargas int, metodo string) {
	antes, _ := json.Marshal(map[string]any{"status": entity.NotaStatusPendingSplit})
	depois, _ := json.Marshal(map[string]any{
		"status": entity.NotaStatusSplit,
		"cargas": cargas,
		"metodo": metodo,
	})
	err := ex.auditRepo.Register(ctx, &entity.AuditLog{
		ID:         uuid.New().String(),
		Ator:       operadorID,
		Acao:       acao,
		Entidade:   "nota_fiscal",
		EntidadeID: nota.ID,
		Antes:      antes,
		Depois:     depois,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		ex.log.Warn().Err(err).Str("nota", nota.ID).Msg("falha ao registrar auditoria da divisão")
	}
}
