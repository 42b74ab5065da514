package entity

import "github.com/shopspring/decimal"

// CargaItem é a porção de um NotaItem alocada a uma carga. Invariante de
// conservação: para cada NotaItem, a soma de Quantidade entre todas as
// cargas da nota é exatamente a quantidade do item (tolerância 0.01).
type CargaItem struct {
	ID            string
	CargaID       string
	NotaItemID    string
	CodigoProduto string
	Descricao     string
	Unidade       string
	Quantidade    decimal.Decimal
	Peso          decimal.Decimal
	Volume        decimal.Decimal
	Valor         decimal.Decimal
}
