package cargas

import (
	"context"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/pkg/logger"
)

// RuleStore consulta as regras de produto especial (máximo por carga).
// A consulta é best-effort: regras são uma otimização da divisão, não um
// requisito de correção, então erro de leitura vira mapa vazio (nenhum
// produto restrito) com um warn no log.
type RuleStore struct {
	repo repository.RegraRepository
	log  *logger.Logger
}

// NewRuleStore constrói o store.
func NewRuleStore(repo repository.RegraRepository, log *logger.Logger) *RuleStore {
	return &RuleStore{repo: repo, log: log}
}

// MaxPorCarga devolve código → máximo por carga, apenas para os códigos que
// têm regra. Ausência de entrada significa "sem restrição".
func (s *RuleStore) MaxPorCarga(ctx context.Context, codigos []string) map[string]int {
	if len(codigos) == 0 {
		return map[string]int{}
	}
	regras, err := s.repo.GetRegras(ctx, codigos)
	if err != nil {
		s.log.Warn().Err(err).Int("codigos", len(codigos)).
			Msg("consulta de regras de produto especial falhou; seguindo sem restrições")
		return map[string]int{}
	}
	if regras == nil {
		return map[string]int{}
	}
	return regras
}
