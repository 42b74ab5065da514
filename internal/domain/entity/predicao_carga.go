package entity

import (
	"encoding/json"
	"time"
)

// Métodos de predição registrados no log de sugestões.
const (
	PredicaoMetodoHeuristica = "heuristica"
	PredicaoMetodoModelo     = "modelo"
)

// PredicaoCarga é o registro auditável de uma sugestão do motor: quantas
// cargas, com qual confiança e a partir de quais features. O operador marca
// depois se aceitou ou ajustou, alimentando a avaliação do estimador.
type PredicaoCarga struct {
	ID                  string
	NotaID              string
	CargasSugeridas     int
	Confianca           float64 // 0..1
	Metodo              string  // heuristica | modelo
	Features            json.RawMessage
	Aceita              *bool // nil = sem resposta do operador ainda
	AjustadaManualmente bool
	CreatedAt           time.Time
	RespondidaEm        *time.Time
}
