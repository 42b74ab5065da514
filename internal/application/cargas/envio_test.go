package cargas_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/application/cargas"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain"
	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

func TestEnvio_MarcaCargaComoEnviada(t *testing.T) {
	cargaRepo := newFakeCargaRepo()
	cargaRepo.cargas = append(cargaRepo.cargas, &entity.Carga{
		ID:     "carga-1",
		NotaID: "nota-1",
		Numero: "12345-C01",
		Status: entity.CargaStatusCreated,
	})
	auditRepo := &fakeAuditRepo{}
	envio := cargas.NewEnvio(cargaRepo, auditRepo, testLogger())

	carga, err := envio.Enviar(context.Background(), "carga-1", "op-1")
	require.NoError(t, err)

	assert.Equal(t, entity.CargaStatusSent, carga.Status)
	require.NotNil(t, carga.EnviadaEm)

	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, entity.AuditAcaoEnvioCarga, auditRepo.logs[0].Acao)
	assert.Equal(t, "op-1", auditRepo.logs[0].Ator)
	assert.Equal(t, "carga-1", auditRepo.logs[0].EntidadeID)
}

func TestEnvio_CargaInexistente(t *testing.T) {
	envio := cargas.NewEnvio(newFakeCargaRepo(), &fakeAuditRepo{}, testLogger())

	_, err := envio.Enviar(context.Background(), "nao-existe", "op-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnvio_CargaJaEnviada(t *testing.T) {
	cargaRepo := newFakeCargaRepo()
	cargaRepo.cargas = append(cargaRepo.cargas, &entity.Carga{
		ID:     "carga-1",
		Numero: "12345-C01",
		Status: entity.CargaStatusSent,
	})
	envio := cargas.NewEnvio(cargaRepo, &fakeAuditRepo{}, testLogger())

	_, err := envio.Enviar(context.Background(), "carga-1", "op-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestConsulta_GetEListByNota(t *testing.T) {
	cargaRepo := newFakeCargaRepo()
	cargaRepo.cargas = append(cargaRepo.cargas,
		&entity.Carga{ID: "carga-1", NotaID: "nota-1", Sequencia: 1},
		&entity.Carga{ID: "carga-2", NotaID: "nota-1", Sequencia: 2},
		&entity.Carga{ID: "carga-3", NotaID: "nota-2", Sequencia: 1},
	)
	consulta := cargas.NewConsulta(cargaRepo)

	carga, err := consulta.Get(context.Background(), "carga-2")
	require.NoError(t, err)
	assert.Equal(t, 2, carga.Sequencia)

	_, err = consulta.Get(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := consulta.ListByNota(context.Background(), "nota-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
