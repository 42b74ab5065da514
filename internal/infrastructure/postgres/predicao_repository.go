package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

var _ repository.PredicaoRepository = (*PredicaoRepo)(nil)

// PredicaoRepo implementação do porto PredicaoRepository sobre PostgreSQL.
type PredicaoRepo struct {
	q Querier
}

// NewPredicaoRepository constrói o adaptador do log de predições.
func NewPredicaoRepository(q Querier) *PredicaoRepo {
	return &PredicaoRepo{q: q}
}

// Create persiste uma predição recém emitida.
func (r *PredicaoRepo) Create(ctx context.Context, p *entity.PredicaoCarga) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO predicoes_carga (id, nota_id, cargas_sugeridas, confianca, metodo,
		                             features, aceita, ajustada_manualmente, created_at, respondida_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.NotaID, p.CargasSugeridas, p.Confianca, p.Metodo,
		p.Features, p.Aceita, p.AjustadaManualmente, p.CreatedAt, p.RespondidaEm,
	)
	if err != nil {
		return fmt.Errorf("insert predicao: %w", err)
	}
	return nil
}

// GetByID obtém uma predição por ID. (nil, nil) quando não existe.
func (r *PredicaoRepo) GetByID(ctx context.Context, id string) (*entity.PredicaoCarga, error) {
	query := `
		SELECT id, nota_id, cargas_sugeridas, confianca, metodo, features,
		       aceita, ajustada_manualmente, created_at, respondida_em
		FROM predicoes_carga WHERE id = $1`
	var p entity.PredicaoCarga
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.NotaID, &p.CargasSugeridas, &p.Confianca, &p.Metodo, &p.Features,
		&p.Aceita, &p.AjustadaManualmente, &p.CreatedAt, &p.RespondidaEm,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get predicao: %w", err)
	}
	return &p, nil
}

// RecordOutcome registra a resposta do operador à sugestão.
func (r *PredicaoRepo) RecordOutcome(ctx context.Context, id string, aceita, ajustadaManualmente bool, respondidaEm time.Time) error {
	query := `
		UPDATE predicoes_carga
		SET aceita = $2, ajustada_manualmente = $3, respondida_em = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, aceita, ajustadaManualmente, respondidaEm)
	if err != nil {
		return fmt.Errorf("record predicao outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record predicao outcome: %w", domain.ErrNotFound)
	}
	return nil
}
