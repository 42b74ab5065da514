package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados do ciclo de vida de uma nota fiscal dentro do back-office.
const (
	NotaStatusPendingSplit = "PENDING_SPLIT" // Recebida do ERP, aguardando divisão em cargas
	NotaStatusSplit        = "SPLIT"         // Dividida: cargas criadas e vinculadas
	NotaStatusCancelled    = "CANCELLED"     // Cancelada pelo fornecedor/ERP, nunca será dividida
)

// NotaFiscal representa o documento de origem (fatura do fornecedor/ERP)
// cujos itens serão divididos em uma ou mais cargas físicas.
type NotaFiscal struct {
	ID              string
	Numero          string
	ClienteNome     string
	ClienteEndereco string
	ClienteCidade   string
	ClienteUF       string
	ValorTotal      decimal.Decimal
	PesoTotal       decimal.Decimal // kg
	VolumeTotal     decimal.Decimal // m³
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
