package entity

import "github.com/shopspring/decimal"

// HistoricoDivisao é um fato imutável de operações passadas: "o produto X,
// com quantidade total Y, foi dividido em cargas de Z unidades, N vezes".
// Usado apenas para inferência, nunca alterado pelo motor.
type HistoricoDivisao struct {
	CodigoProduto      string
	QuantidadeTotal    decimal.Decimal
	QuantidadePorCarga int
	Frequencia         int
}
