package repository

import "context"

// RegraRepository define o porto de leitura das regras de produto especial.
// GetRegras retorna somente os códigos que têm regra; ausência de entrada
// significa "sem restrição".
type RegraRepository interface {
	GetRegras(ctx context.Context, codigos []string) (map[string]int, error)
}
