package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

var _ repository.NotaRepository = (*NotaRepo)(nil)

// NotaRepo implementação do porto NotaRepository sobre PostgreSQL (usável com pool ou tx).
type NotaRepo struct {
	q Querier
}

// NewNotaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotaRepository(q Querier) *NotaRepo {
	return &NotaRepo{q: q}
}

// GetByID obtém uma nota fiscal por ID. (nil, nil) quando não existe.
func (r *NotaRepo) GetByID(ctx context.Context, id string) (*entity.NotaFiscal, error) {
	query := `
		SELECT id, numero, cliente_nome, cliente_endereco, cliente_cidade, cliente_uf,
		       valor_total, peso_total, volume_total, status, created_at, updated_at
		FROM notas_fiscais WHERE id = $1`
	var n entity.NotaFiscal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Numero, &n.ClienteNome, &n.ClienteEndereco, &n.ClienteCidade, &n.ClienteUF,
		&n.ValorTotal, &n.PesoTotal, &n.VolumeTotal, &n.Status, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota: %w", err)
	}
	return &n, nil
}

// GetItens obtém todas as linhas de uma nota, na ordem de inserção.
func (r *NotaRepo) GetItens(ctx context.Context, notaID string) ([]*entity.NotaItem, error) {
	query := `
		SELECT id, nota_id, codigo_produto, COALESCE(codigo_interno, ''), descricao, unidade,
		       quantidade, quantidade_alocada, valor_unitario, peso_unitario, volume_unitario
		FROM nota_itens WHERE nota_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list nota itens: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotaItem
	for rows.Next() {
		var it entity.NotaItem
		if err := rows.Scan(
			&it.ID, &it.NotaID, &it.CodigoProduto, &it.CodigoInterno, &it.Descricao, &it.Unidade,
			&it.Quantidade, &it.QuantidadeAlocada, &it.ValorUnitario, &it.PesoUnitario, &it.VolumeUnitario,
		); err != nil {
			return nil, fmt.Errorf("scan nota item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus atualiza o status da nota.
func (r *NotaRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE notas_fiscais SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update nota status: %w", err)
	}
	return nil
}

// UpdateItemQuantidadeAlocada grava a quantidade já distribuída de um item.
func (r *NotaRepo) UpdateItemQuantidadeAlocada(ctx context.Context, itemID string, quantidade decimal.Decimal) error {
	query := `UPDATE nota_itens SET quantidade_alocada = $2 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, itemID, quantidade)
	if err != nil {
		return fmt.Errorf("update quantidade alocada: %w", err)
	}
	return nil
}

// ListByStatus lista notas por status com paginação, mais recentes primeiro.
func (r *NotaRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.NotaFiscal, error) {
	query := `
		SELECT id, numero, cliente_nome, cliente_endereco, cliente_cidade, cliente_uf,
		       valor_total, peso_total, volume_total, status, created_at, updated_at
		FROM notas_fiscais WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notas: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotaFiscal
	for rows.Next() {
		var n entity.NotaFiscal
		if err := rows.Scan(
			&n.ID, &n.Numero, &n.ClienteNome, &n.ClienteEndereco, &n.ClienteCidade, &n.ClienteUF,
			&n.ValorTotal, &n.PesoTotal, &n.VolumeTotal, &n.Status, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// FindProdutosDeNotasDivididas retorna o conjunto de códigos de produto de
// cada nota já dividida que compartilha ao menos dois dos códigos informados.
func (r *NotaRepo) FindProdutosDeNotasDivididas(ctx context.Context, codigos []string) ([][]string, error) {
	if len(codigos) == 0 {
		return nil, nil
	}
	query := `
		SELECT array_agg(DISTINCT i.codigo_produto)
		FROM nota_itens i
		JOIN notas_fiscais n ON n.id = i.nota_id
		WHERE n.status = 'SPLIT'
		GROUP BY i.nota_id
		HAVING count(DISTINCT i.codigo_produto) FILTER (WHERE i.codigo_produto = ANY($1)) >= 2`
	rows, err := r.q.Query(ctx, query, codigos)
	if err != nil {
		return nil, fmt.Errorf("find produtos de notas divididas: %w", err)
	}
	defer rows.Close()
	var conjuntos [][]string
	for rows.Next() {
		var produtos []string
		if err := rows.Scan(&produtos); err != nil {
			return nil, fmt.Errorf("scan produtos: %w", err)
		}
		conjuntos = append(conjuntos, produtos)
	}
	return conjuntos, rows.Err()
}
