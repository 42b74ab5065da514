package entity

import "time"

// RegraProdutoEspecial limita quantos itens de um produto podem viajar na
// mesma carga (tipicamente 1: bobinas, vidros, máquinas). Mantida pelo
// tooling de importação de histórico; o motor de divisão apenas lê.
type RegraProdutoEspecial struct {
	CodigoProduto string
	MaxPorCarga   int
	Observacao    string
	CreatedAt     time.Time
}
