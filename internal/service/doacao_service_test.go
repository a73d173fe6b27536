package service

import (
	"context"
	"testing"
	"time"

	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory DoacaoRepository stub ──────────────────────────────────────────

// stubDoacaoRepo consulta o stub de produtos para montar a coleção Produtos,
// como o Preload faria.
type stubDoacaoRepo struct {
	doacoes     map[uuid.UUID]*model.Doacao
	doadores    *stubDoadorRepo
	produtoRepo *stubProdutoRepo
}

func newStubDoacaoRepo(doadores *stubDoadorRepo, produtoRepo *stubProdutoRepo) *stubDoacaoRepo {
	return &stubDoacaoRepo{
		doacoes:     make(map[uuid.UUID]*model.Doacao),
		doadores:    doadores,
		produtoRepo: produtoRepo,
	}
}

func (r *stubDoacaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Doacao, error) {
	d, ok := r.doacoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	if doador, ok := r.doadores.doadores[d.DoadorID]; ok {
		cp.Doador = doador
	}
	cp.Produtos = nil
	for _, p := range r.produtoRepo.produtos {
		if p.DoacaoID == id {
			cp.Produtos = append(cp.Produtos, *p)
		}
	}
	return &cp, nil
}

func (r *stubDoacaoRepo) List(_ context.Context) ([]model.Doacao, error) {
	out := make([]model.Doacao, 0, len(r.doacoes))
	for _, d := range r.doacoes {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDoacaoRepo) MarcarEntregue(_ context.Context, id uuid.UUID, quando time.Time) error {
	d, ok := r.doacoes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.DataEntrega = &quando
	return nil
}

func (r *stubDoacaoRepo) CreateTx(_ *gorm.DB, d *model.Doacao) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.doacoes[d.ID] = &cp
	return nil
}

func (r *stubDoacaoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.doacoes, id)
	return nil
}

func (r *stubDoacaoRepo) DB() *gorm.DB { return nil }

var _ repository.DoacaoRepository = (*stubDoacaoRepo)(nil)

// ── In-memory DoadorRepository stub ──────────────────────────────────────────

type stubDoadorRepo struct {
	doadores map[uuid.UUID]*model.Doador
}

func newStubDoadorRepo() *stubDoadorRepo {
	return &stubDoadorRepo{doadores: make(map[uuid.UUID]*model.Doador)}
}

func (r *stubDoadorRepo) Create(_ context.Context, d *model.Doador) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.doadores[d.ID] = d
	return nil
}

func (r *stubDoadorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Doador, error) {
	d, ok := r.doadores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDoadorRepo) FindByEmail(_ context.Context, email string) (*model.Doador, error) {
	for _, d := range r.doadores {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDoadorRepo) List(_ context.Context) ([]model.Doador, error) {
	out := make([]model.Doador, 0, len(r.doadores))
	for _, d := range r.doadores {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDoadorRepo) Update(_ context.Context, d *model.Doador) error {
	r.doadores[d.ID] = d
	return nil
}

func (r *stubDoadorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.doadores, id)
	return nil
}

var _ repository.DoadorRepository = (*stubDoadorRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

type doacaoFixture struct {
	svc         DoacaoService
	repo        *stubDoacaoRepo
	produtoRepo *stubProdutoRepo
	doador      *model.Doador
}

func newDoacaoFixture(t *testing.T) *doacaoFixture {
	t.Helper()
	doadorRepo := newStubDoadorRepo()
	produtoRepo := newStubProdutoRepo()
	repo := newStubDoacaoRepo(doadorRepo, produtoRepo)

	doador := &model.Doador{
		ID:       uuid.New(),
		Nome:     "João Pereira",
		Email:    "joao@example.com",
		Telefone: "(11) 98888-7777",
		Endereco: "Av. Central, 200",
	}
	doadorRepo.doadores[doador.ID] = doador

	svc := NewDoacaoService(repo, produtoRepo, doadorRepo, nil, nil, t.TempDir())
	return &doacaoFixture{svc: svc, repo: repo, produtoRepo: produtoRepo, doador: doador}
}

func registrarDoacao(t *testing.T, f *doacaoFixture, produtos []dto.ProdutoEntradaRequest) *dto.DoacaoResponse {
	t.Helper()
	resp, err := f.svc.Registrar(context.Background(), dto.RegistrarDoacaoRequest{
		DataDoacao:  "2026-08-01",
		DataEntrada: "2026-08-02",
		DoadorID:    f.doador.ID.String(),
		Produtos:    produtos,
	})
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarDoacaoComProdutos(t *testing.T) {
	f := newDoacaoFixture(t)

	resp := registrarDoacao(t, f, []dto.ProdutoEntradaRequest{
		{Nome: "Arroz 5kg", Unidade: 10, Validade: "2026-12-31", Data: "2026-08-02"},
		{Nome: "Feijão 1kg", Unidade: 6, Validade: "2026-10-15", Data: "2026-08-02"},
	})

	assert.Len(t, resp.Produtos, 2)
	assert.Equal(t, f.doador.Email, resp.Doador.Email)
	for _, p := range resp.Produtos {
		assert.True(t, p.Ativo)
	}
	assert.Len(t, f.produtoRepo.produtos, 2)
}

func TestRegistrarDoacaoDoadorInexistente(t *testing.T) {
	f := newDoacaoFixture(t)

	_, err := f.svc.Registrar(context.Background(), dto.RegistrarDoacaoRequest{
		DataDoacao:  "2026-08-01",
		DataEntrada: "2026-08-02",
		DoadorID:    uuid.New().String(),
		Produtos: []dto.ProdutoEntradaRequest{
			{Nome: "Arroz 5kg", Unidade: 10, Validade: "2026-12-31", Data: "2026-08-02"},
		},
	})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
	assert.Empty(t, f.repo.doacoes)
	assert.Empty(t, f.produtoRepo.produtos)
}

func TestRegistrarDoacaoSemProdutos(t *testing.T) {
	f := newDoacaoFixture(t)

	_, err := f.svc.Registrar(context.Background(), dto.RegistrarDoacaoRequest{
		DataDoacao:  "2026-08-01",
		DataEntrada: "2026-08-02",
		DoadorID:    f.doador.ID.String(),
		Produtos:    nil,
	})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestRegistrarDoacaoDataInvalida(t *testing.T) {
	f := newDoacaoFixture(t)

	_, err := f.svc.Registrar(context.Background(), dto.RegistrarDoacaoRequest{
		DataDoacao:  "01/08/2026",
		DataEntrada: "2026-08-02",
		DoadorID:    f.doador.ID.String(),
		Produtos: []dto.ProdutoEntradaRequest{
			{Nome: "Arroz 5kg", Unidade: 10, Validade: "2026-12-31", Data: "2026-08-02"},
		},
	})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestMarcarEntregue(t *testing.T) {
	f := newDoacaoFixture(t)
	resp := registrarDoacao(t, f, []dto.ProdutoEntradaRequest{
		{Nome: "Leite 1L", Unidade: 12, Validade: "2026-09-30", Data: "2026-08-02"},
	})

	entregue, err := f.svc.MarcarEntregue(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, entregue.DataEntrega)
}

func TestMarcarEntregueInexistente(t *testing.T) {
	f := newDoacaoFixture(t)
	_, err := f.svc.MarcarEntregue(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestRemoverDoacaoApagaProdutos(t *testing.T) {
	f := newDoacaoFixture(t)
	resp := registrarDoacao(t, f, []dto.ProdutoEntradaRequest{
		{Nome: "Óleo 900ml", Unidade: 5, Validade: "2027-01-31", Data: "2026-08-02"},
	})

	err := f.svc.Remover(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Empty(t, f.repo.doacoes)
	assert.Empty(t, f.produtoRepo.produtos)
}

func TestRemoverDoacaoComAlocacoesRecusada(t *testing.T) {
	f := newDoacaoFixture(t)
	resp := registrarDoacao(t, f, []dto.ProdutoEntradaRequest{
		{Nome: "Açúcar 1kg", Unidade: 5, Validade: "2027-01-31", Data: "2026-08-02"},
	})

	// Simula uma alocação existente para o produto do lote.
	f.produtoRepo.alocacoes = func(uuid.UUID) int64 { return 1 }

	err := f.svc.Remover(context.Background(), uuid.MustParse(resp.ID))
	assert.ErrorIs(t, err, ErrValidacao)
	assert.Len(t, f.repo.doacoes, 1)
	assert.Len(t, f.produtoRepo.produtos, 1)
}

func TestGerarComprovanteAntesDaEntrega(t *testing.T) {
	f := newDoacaoFixture(t)
	resp := registrarDoacao(t, f, []dto.ProdutoEntradaRequest{
		{Nome: "Farinha 1kg", Unidade: 3, Validade: "2026-11-30", Data: "2026-08-02"},
	})

	_, err := f.svc.GerarComprovante(context.Background(), uuid.MustParse(resp.ID))
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestGerarComprovanteAposEntrega(t *testing.T) {
	f := newDoacaoFixture(t)
	resp := registrarDoacao(t, f, []dto.ProdutoEntradaRequest{
		{Nome: "Farinha 1kg", Unidade: 3, Validade: "2026-11-30", Data: "2026-08-02"},
	})
	_, err := f.svc.MarcarEntregue(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	path, err := f.svc.GerarComprovante(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
