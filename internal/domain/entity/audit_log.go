package entity

import (
	"encoding/json"
	"time"
)

// Ações registradas pelo motor de divisão na trilha de auditoria.
const (
	AuditAcaoDivisaoAutomatica = "DIVISAO_AUTOMATICA"
	AuditAcaoDivisaoManual     = "DIVISAO_MANUAL"
	AuditAcaoEnvioCarga        = "ENVIO_CARGA"
)

// AuditLog é um evento da trilha de auditoria: quem fez o quê com qual
// entidade, com snapshots antes/depois. O formato de armazenamento é
// responsabilidade do adaptador, não do motor.
type AuditLog struct {
	ID         string
	Ator       string // ID do operador
	Acao       string
	Entidade   string // "nota_fiscal", "carga"...
	EntidadeID string
	Antes      json.RawMessage
	Depois     json.RawMessage
	CreatedAt  time.Time
}
