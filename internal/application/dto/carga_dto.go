package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotaResponse nota fiscal em respostas.
type NotaResponse struct {
	ID              string             `json:"id"`
	Numero          string             `json:"numero"`
	ClienteNome     string             `json:"cliente_nome"`
	ClienteEndereco string             `json:"cliente_endereco,omitempty"`
	ClienteCidade   string             `json:"cliente_cidade,omitempty"`
	ClienteUF       string             `json:"cliente_uf,omitempty"`
	ValorTotal      decimal.Decimal    `json:"valor_total"`
	PesoTotal       decimal.Decimal    `json:"peso_total"`
	VolumeTotal     decimal.Decimal    `json:"volume_total"`
	Status          string             `json:"status"`
	Itens           []NotaItemResponse `json:"itens,omitempty"`
}

// NotaItemResponse linha da nota em respostas.
type NotaItemResponse struct {
	ID                string          `json:"id"`
	CodigoProduto     string          `json:"codigo_produto"`
	CodigoInterno     string          `json:"codigo_interno,omitempty"`
	Descricao         string          `json:"descricao"`
	Unidade           string          `json:"unidade"`
	Quantidade        decimal.Decimal `json:"quantidade"`
	QuantidadeAlocada decimal.Decimal `json:"quantidade_alocada"`
	ValorUnitario     decimal.Decimal `json:"valor_unitario"`
	PesoUnitario      decimal.Decimal `json:"peso_unitario"`
	VolumeUnitario    decimal.Decimal `json:"volume_unitario"`
}

// SugestaoResponse resposta do preview de divisão (GET /api/notas/:id/sugestao).
// PredicaoID permite ao operador responder aceite/rejeição depois.
type SugestaoResponse struct {
	Cargas     int     `json:"cargas"`
	Metodo     string  `json:"metodo"`
	Confianca  float64 `json:"confianca,omitempty"`
	PredicaoID string  `json:"predicao_id,omitempty"`
}

// SplitRequest body para POST /api/notas/:id/dividir.
// NumCargas zero delega ao estimador.
type SplitRequest struct {
	NumCargas int    `json:"num_cargas,omitempty"`
	Metodo    string `json:"metodo,omitempty"`
}

// SplitManualRequest body para POST /api/notas/:id/dividir-manual: os grupos
// montados pelo operador, um por carga.
type SplitManualRequest struct {
	Grupos []GrupoManualRequest `json:"grupos" validate:"required,min=1"`
}

// GrupoManualRequest um agrupamento da divisão manual.
type GrupoManualRequest struct {
	Itens []ItemManualRequest `json:"itens"`
}

// ItemManualRequest porção de um item da nota dentro de um grupo.
type ItemManualRequest struct {
	NotaItemID string          `json:"nota_item_id" validate:"required"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
}

// SplitResponse resultado da divisão (automática ou manual).
type SplitResponse struct {
	NotaID     string          `json:"nota_id"`
	Status     string          `json:"status"`
	Metodo     string          `json:"metodo"`
	PredicaoID string          `json:"predicao_id,omitempty"`
	Cargas     []CargaResponse `json:"cargas"`
}

// CargaResponse carga em respostas.
type CargaResponse struct {
	ID          string              `json:"id"`
	NotaID      string              `json:"nota_id"`
	Numero      string              `json:"numero"`
	Sequencia   int                 `json:"sequencia"`
	ClienteNome string              `json:"cliente_nome"`
	PesoTotal   decimal.Decimal     `json:"peso_total"`
	VolumeTotal decimal.Decimal     `json:"volume_total"`
	ValorTotal  decimal.Decimal     `json:"valor_total"`
	Status      string              `json:"status"`
	EnviadaEm   *time.Time          `json:"enviada_em,omitempty"`
	Itens       []CargaItemResponse `json:"itens,omitempty"`
}

// CargaItemResponse porção de item dentro de uma carga.
type CargaItemResponse struct {
	ID            string          `json:"id"`
	NotaItemID    string          `json:"nota_item_id"`
	CodigoProduto string          `json:"codigo_produto"`
	Descricao     string          `json:"descricao"`
	Unidade       string          `json:"unidade"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	Peso          decimal.Decimal `json:"peso"`
	Volume        decimal.Decimal `json:"volume"`
	Valor         decimal.Decimal `json:"valor"`
}

// PredicaoFeedbackRequest body para POST /api/predicoes/:id/resultado.
type PredicaoFeedbackRequest struct {
	Aceita              bool `json:"aceita"`
	AjustadaManualmente bool `json:"ajustada_manualmente"`
}
