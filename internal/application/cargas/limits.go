package cargas

import "github.com/shopspring/decimal"

// Limites canônicos da operação: capacidade física de um caminhão e o teto
// de exposição monetária por carga, além do corte de confiança a partir do
// qual a predição é aceita sem contagem por restrições. O único ponto de
// override é o struct Limits, populado a partir do pkg/config.
const (
	DefaultPesoMaxKg    = 25000
	DefaultVolumeMaxM3  = 80
	DefaultValorMaxReal = 500000
	DefaultConfiancaMin = 0.6
)

// Limits agrupa os limites usados pelo estimador e pela heurística de
// capacidade.
type Limits struct {
	PesoMaxKg    decimal.Decimal
	VolumeMaxM3  decimal.Decimal
	ValorMax     decimal.Decimal
	ConfiancaMin float64
}

// DefaultLimits devolve os limites canônicos.
func DefaultLimits() Limits {
	return Limits{
		PesoMaxKg:    decimal.NewFromInt(DefaultPesoMaxKg),
		VolumeMaxM3:  decimal.NewFromInt(DefaultVolumeMaxM3),
		ValorMax:     decimal.NewFromInt(DefaultValorMaxReal),
		ConfiancaMin: DefaultConfiancaMin,
	}
}

// cargasPorCapacidade devolve ceil(total/limite), com mínimo zero.
// Limite não positivo desativa a dimensão.
func cargasPorCapacidade(total, limite decimal.Decimal) int {
	if limite.LessThanOrEqual(decimal.Zero) || total.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(total.Div(limite).Ceil().IntPart())
}
