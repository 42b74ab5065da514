package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

var _ repository.CargaRepository = (*CargaRepo)(nil)

// CargaRepo implementação do porto CargaRepository sobre PostgreSQL (usável com pool ou tx).
type CargaRepo struct {
	q Querier
}

// NewCargaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCargaRepository(q Querier) *CargaRepo {
	return &CargaRepo{q: q}
}

// Create persiste a cabeça da carga.
func (r *CargaRepo) Create(ctx context.Context, carga *entity.Carga) error {
	if carga.ID == "" {
		carga.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cargas (id, nota_id, numero, sequencia, cliente_nome, cliente_endereco,
		                    cliente_cidade, cliente_uf, peso_total, volume_total, valor_total,
		                    status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		carga.ID, carga.NotaID, carga.Numero, carga.Sequencia,
		carga.ClienteNome, carga.ClienteEndereco, carga.ClienteCidade, carga.ClienteUF,
		carga.PesoTotal, carga.VolumeTotal, carga.ValorTotal,
		carga.Status, carga.CreatedAt, carga.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("numero de carga ja existe: %w", err)
		}
		return fmt.Errorf("insert carga: %w", err)
	}
	return nil
}

// CreateItem persiste uma porção de item dentro da carga.
func (r *CargaRepo) CreateItem(ctx context.Context, item *entity.CargaItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO carga_itens (id, carga_id, nota_item_id, codigo_produto, descricao,
		                         unidade, quantidade, peso, volume, valor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.CargaID, item.NotaItemID, item.CodigoProduto, item.Descricao,
		item.Unidade, item.Quantidade, item.Peso, item.Volume, item.Valor,
	)
	if err != nil {
		return fmt.Errorf("insert carga item: %w", err)
	}
	return nil
}

// UpdateTotais grava os totais agregados derivados dos itens.
func (r *CargaRepo) UpdateTotais(ctx context.Context, cargaID string, peso, volume, valor decimal.Decimal) error {
	query := `
		UPDATE cargas SET peso_total = $2, volume_total = $3, valor_total = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, cargaID, peso, volume, valor)
	if err != nil {
		return fmt.Errorf("update carga totais: %w", err)
	}
	return nil
}

// GetByID obtém uma carga com seus itens. (nil, nil) quando não existe.
func (r *CargaRepo) GetByID(ctx context.Context, id string) (*entity.Carga, error) {
	query := `
		SELECT id, nota_id, numero, sequencia, cliente_nome, cliente_endereco,
		       cliente_cidade, cliente_uf, peso_total, volume_total, valor_total,
		       status, enviada_em, created_at, updated_at
		FROM cargas WHERE id = $1`
	var c entity.Carga
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.NotaID, &c.Numero, &c.Sequencia,
		&c.ClienteNome, &c.ClienteEndereco, &c.ClienteCidade, &c.ClienteUF,
		&c.PesoTotal, &c.VolumeTotal, &c.ValorTotal,
		&c.Status, &c.EnviadaEm, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carga: %w", err)
	}
	itens, err := r.listItens(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Itens = itens
	return &c, nil
}

// ListByNota lista as cargas de uma nota em ordem de sequência, com itens.
func (r *CargaRepo) ListByNota(ctx context.Context, notaID string) ([]*entity.Carga, error) {
	query := `
		SELECT id, nota_id, numero, sequencia, cliente_nome, cliente_endereco,
		       cliente_cidade, cliente_uf, peso_total, volume_total, valor_total,
		       status, enviada_em, created_at, updated_at
		FROM cargas WHERE nota_id = $1 ORDER BY sequencia`
	rows, err := r.q.Query(ctx, query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list cargas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Carga
	for rows.Next() {
		var c entity.Carga
		if err := rows.Scan(
			&c.ID, &c.NotaID, &c.Numero, &c.Sequencia,
			&c.ClienteNome, &c.ClienteEndereco, &c.ClienteCidade, &c.ClienteUF,
			&c.PesoTotal, &c.VolumeTotal, &c.ValorTotal,
			&c.Status, &c.EnviadaEm, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan carga: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		itens, err := r.listItens(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Itens = itens
	}
	return list, nil
}

// CountByNota conta quantas cargas a nota já tem.
func (r *CargaRepo) CountByNota(ctx context.Context, notaID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM cargas WHERE nota_id = $1`, notaID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cargas: %w", err)
	}
	return count, nil
}

// MarkSent carimba a expedição da carga.
func (r *CargaRepo) MarkSent(ctx context.Context, id string, enviadaEm time.Time) error {
	query := `UPDATE cargas SET status = $2, enviada_em = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, entity.CargaStatusSent, enviadaEm)
	if err != nil {
		return fmt.Errorf("mark carga sent: %w", err)
	}
	return nil
}

func (r *CargaRepo) listItens(ctx context.Context, cargaID string) ([]*entity.CargaItem, error) {
	query := `
		SELECT id, carga_id, nota_item_id, codigo_produto, descricao, unidade,
		       quantidade, peso, volume, valor
		FROM carga_itens WHERE carga_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, cargaID)
	if err != nil {
		return nil, fmt.Errorf("list carga itens: %w", err)
	}
	defer rows.Close()
	var list []*entity.CargaItem
	for rows.Next() {
		var it entity.CargaItem
		if err := rows.Scan(
			&it.ID, &it.CargaID, &it.NotaItemID, &it.CodigoProduto, &it.Descricao, &it.Unidade,
			&it.Quantidade, &it.Peso, &it.Volume, &it.Valor,
		); err != nil {
			return nil, fmt.Errorf("scan carga item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
