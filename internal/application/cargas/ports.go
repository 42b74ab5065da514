package cargas

import (
	"context"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante que todas as escritas de uma
// divisão (cargas, itens, status da nota) entram ou são revertidas juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		notaRepo repository.NotaRepository,
		cargaRepo repository.CargaRepository,
	) error) error
}
