package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementação do porto AuditRepository sobre PostgreSQL.
// Trilha append-only; nunca se atualiza nem se apaga daqui.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository constrói o adaptador da trilha de auditoria.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Register persiste um evento de auditoria.
func (r *AuditRepo) Register(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, ator, acao, entidade, entidade_id, antes, depois, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.Ator, log.Acao, log.Entidade, log.EntidadeID,
		log.Antes, log.Depois, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
