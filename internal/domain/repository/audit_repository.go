package repository

import (
	"context"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// AuditRepository define o porto da trilha de auditoria. O motor só emite
// eventos; formato e retenção são do adaptador.
type AuditRepository interface {
	Register(ctx context.Context, log *entity.AuditLog) error
}
