package repository

import (
	"context"
	"time"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// PredicaoRepository define o porto do log auditável de predições.
type PredicaoRepository interface {
	Create(ctx context.Context, p *entity.PredicaoCarga) error
	GetByID(ctx context.Context, id string) (*entity.PredicaoCarga, error)

	// RecordOutcome marca a predição como aceita/rejeitada pelo operador,
	// registrando se a distribuição final foi ajustada manualmente.
	RecordOutcome(ctx context.Context, id string, aceita, ajustadaManualmente bool, respondidaEm time.Time) error
}
