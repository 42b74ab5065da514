package romaneio

import (
	"context"
	"fmt"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/repository"
)

// RomaneioGenerator gera a representação gráfica (PDF) do romaneio de carga,
// o documento que acompanha a remessa até o cliente.
type RomaneioGenerator interface {
	GenerateRomaneio(ctx context.Context, carga *entity.Carga, nota *entity.NotaFiscal) ([]byte, error)
}

// UseCase monta os dados do romaneio e delega a geração do PDF.
type UseCase struct {
	cargaRepo repository.CargaRepository
	notaRepo  repository.NotaRepository
	generator RomaneioGenerator
}

// NewUseCase constrói o caso de uso injetando suas dependências.
func NewUseCase(cargaRepo repository.CargaRepository, notaRepo repository.NotaRepository, generator RomaneioGenerator) *UseCase {
	return &UseCase{cargaRepo: cargaRepo, notaRepo: notaRepo, generator: generator}
}

// DownloadRomaneio recupera a carga com seus itens, a nota de origem, e gera
// o PDF do romaneio.
//
// Retorna:
//   - (pdfBytes, filename, nil) se tudo sai bem.
//   - domain.ErrNotFound        se a carga ou a nota não existem.
func (uc *UseCase) DownloadRomaneio(ctx context.Context, cargaID string) (pdfBytes []byte, filename string, err error) {
	carga, err := uc.cargaRepo.GetByID(ctx, cargaID)
	if err != nil {
		return nil, "", fmt.Errorf("romaneio: obter carga: %w", err)
	}
	if carga == nil {
		return nil, "", domain.ErrNotFound
	}

	nota, err := uc.notaRepo.GetByID(ctx, carga.NotaID)
	if err != nil {
		return nil, "", fmt.Errorf("romaneio: obter nota: %w", err)
	}
	if nota == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateRomaneio(ctx, carga, nota)
	if err != nil {
		return nil, "", fmt.Errorf("romaneio: geração falhou: %w", err)
	}

	filename = fmt.Sprintf("romaneio_%s.pdf", carga.Numero)
	return pdfBytes, filename, nil
}
