package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrNotaAlreadySplit   = errors.New("nota fiscal já dividida em cargas")
)

// SplitValidationError indica que um agrupamento manual viola a conservação
// de quantidades: a soma alocada para um item difere da quantidade da nota.
// Carrega o item e os valores esperado/recebido para que a UI aponte o erro.
type SplitValidationError struct {
	NotaItemID string
	Produto    string
	Esperado   decimal.Decimal
	Recebido   decimal.Decimal
}

func (e *SplitValidationError) Error() string {
	return fmt.Sprintf("quantidade do item %s (produto %s) não confere: esperado %s, recebido %s",
		e.NotaItemID, e.Produto, e.Esperado.String(), e.Recebido.String())
}

// PartialWriteError indica falha de persistência no meio de uma divisão.
// Com o TxRunner a transação inteira é revertida, mas o tipo preserva qual
// escrita falhou para diagnóstico.
type PartialWriteError struct {
	NotaID string
	Etapa  string // "carga", "carga_item", "status"
	Err    error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("falha ao persistir divisão da nota %s (etapa %s): %v", e.NotaID, e.Etapa, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
