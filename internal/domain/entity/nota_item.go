package entity

import "github.com/shopspring/decimal"

// NotaItem representa uma linha da nota fiscal. Quantidade nunca muda depois
// de criada; QuantidadeAlocada é o único campo derivado, atualizado conforme
// os itens são distribuídos em cargas. Invariante: QuantidadeAlocada nunca
// excede Quantidade.
type NotaItem struct {
	ID                string
	NotaID            string
	CodigoProduto     string // código externo (fornecedor)
	CodigoInterno     string // código interno, vazio se não mapeado
	Descricao         string
	Unidade           string // UN, CX, KG...
	Quantidade        decimal.Decimal
	QuantidadeAlocada decimal.Decimal
	ValorUnitario     decimal.Decimal
	PesoUnitario      decimal.Decimal // kg por unidade; zero = desconhecido
	VolumeUnitario    decimal.Decimal // m³ por unidade; zero = desconhecido
}

// PesoTotal retorna o peso da linha inteira (quantidade × peso unitário).
func (i *NotaItem) PesoTotal() decimal.Decimal {
	return i.Quantidade.Mul(i.PesoUnitario)
}

// VolumeTotal retorna o volume da linha inteira.
func (i *NotaItem) VolumeTotal() decimal.Decimal {
	return i.Quantidade.Mul(i.VolumeUnitario)
}

// ValorTotal retorna o valor da linha inteira.
func (i *NotaItem) ValorTotal() decimal.Decimal {
	return i.Quantidade.Mul(i.ValorUnitario)
}
