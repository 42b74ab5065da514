package cargas

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// Envio marca cargas como expedidas. Depois do envio a carga é imutável:
// só o carimbo de expedição muda em relação ao estado criado.
type Envio struct {
	cargaRepo repository.CargaRepository
	auditRepo repository.AuditRepository
	log       *logger.Logger
}

// NewEnvio constrói o caso de uso de expedição.
func NewEnvio(cargaRepo repository.CargaRepository, auditRepo repository.AuditRepository, log *logger.Logger) *Envio {
	return &Envio{cargaRepo: cargaRepo, auditRepo: auditRepo, log: log}
}

// Enviar marca a carga como SENT com o horário atual. Devolve ErrNotFound se
// a carga não existe e ErrConflict se já foi enviada.
func (e *Envio) Enviar(ctx context.Context, cargaID, operadorID string) (*entity.Carga, error) {
	carga, err := e.cargaRepo.GetByID(ctx, cargaID)
	if err != nil {
		return nil, fmt.Errorf("enviar carga: %w", err)
	}
	if carga == nil {
		return nil, domain.ErrNotFound
	}
	if carga.Status == entity.CargaStatusSent {
		return nil, fmt.Errorf("%w: carga %s ja enviada", domain.ErrConflict, carga.Numero)
	}

	agora := time.Now()
	if err := e.cargaRepo.MarkSent(ctx, cargaID, agora); err != nil {
		return nil, fmt.Errorf("enviar carga: %w", err)
	}

	antes, _ := json.Marshal(map[string]string{"status": carga.Status})
	depois, _ := json.Marshal(map[string]string{"status": entity.CargaStatusSent})
	if err := e.auditRepo.Register(ctx, &entity.AuditLog{
		ID:         uuid.New().String(),
		Ator:       operadorID,
		Acao:       entity.AuditAcaoEnvioCarga,
		Entidade:   "carga",
		EntidadeID: carga.ID,
		Antes:      antes,
		Depois:     depois,
		CreatedAt:  agora,
	}); err != nil {
		e.log.Warn().Err(err).Str("carga_id", carga.ID).Msg("falha ao registrar auditoria do envio")
	}

	carga.Status = entity.CargaStatusSent
	carga.EnviadaEm = &agora
	return carga, nil
}
