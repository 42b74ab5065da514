package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados do ciclo de vida de uma carga.
const (
	CargaStatusCreated = "CREATED" // Criada pela divisão (automática ou manual)
	CargaStatusSent    = "SENT"    // Expedida; imutável exceto o carimbo de envio
)

// Carga representa uma remessa física: um agrupamento de itens de uma única
// nota fiscal que viaja junto. Os totais são derivados e recalculados a cada
// mutação dos itens.
type Carga struct {
	ID              string
	NotaID          string
	Numero          string // {numeroNota}-C{sequência com zero à esquerda}
	Sequencia       int
	ClienteNome     string
	ClienteEndereco string
	ClienteCidade   string
	ClienteUF       string
	PesoTotal       decimal.Decimal
	VolumeTotal     decimal.Decimal
	ValorTotal      decimal.Decimal
	Status          string
	Itens           []*CargaItem
	EnviadaEm       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AddItem anexa um item e recalcula os totais agregados da carga.
func (c *Carga) AddItem(item *CargaItem) {
	c.Itens = append(c.Itens, item)
	c.PesoTotal = c.PesoTotal.Add(item.Peso)
	c.VolumeTotal = c.VolumeTotal.Add(item.Volume)
	c.ValorTotal = c.ValorTotal.Add(item.Valor)
}
