//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Scenarios:
//   - Full donation cycle: donor → donation batch → delivery → allocation
//   - Concurrent allocations on the same product never lose an update
//   - Donation registration is atomic: one bad product aborts the batch
//   - Donation removal is refused while allocations exist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glaucoaluno/AjudaOngs/internal/config"
	"github.com/glaucoaluno/AjudaOngs/internal/infra"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("ajudaongs_test"),
		tcPostgres.WithUsername("ajudaongs"),
		tcPostgres.WithPassword("ajudaongs"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed e2e user
	hash, err := bcrypt.GenerateFromPassword([]byte("ajudaongs2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Nome:         "Admin E2E",
		Email:        "admin@e2e.test",
		PasswordHash: string(hash),
		Ativo:        true,
	}).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "ajudaongs2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func criarDoador(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/doadores", jsonBody(t, map[string]any{
		"nome":     "Doador E2E",
		"email":    email,
		"telefone": "(11) 90000-0000",
		"endereco": "Rua dos Testes, 1",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var doador struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &doador)
	return doador.ID
}

func criarFamilia(t *testing.T, env *testEnv, cpf string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/familias", jsonBody(t, map[string]any{
		"nome_representante": "Família E2E",
		"cpf_responsavel":    cpf,
		"telefone":           "(11) 91111-1111",
		"endereco":           "Rua das Famílias, 2",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var familia struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &familia)
	return familia.ID
}

// criarDoacaoEntregue registra uma doação com um único produto e a marca como
// entregue, devolvendo o id do produto.
func criarDoacaoEntregue(t *testing.T, env *testEnv, doadorID, nome string, unidade int) (doacaoID, produtoID string) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/doacoes", jsonBody(t, map[string]any{
		"data_doacao":  "2026-08-01",
		"data_entrada": "2026-08-02",
		"doador_id":    doadorID,
		"produtos": []map[string]any{
			{"nome": nome, "unidade": unidade, "validade": "2026-12-31", "data": "2026-08-02"},
		},
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var doacao struct {
		ID       string `json:"id"`
		Produtos []struct {
			ID string `json:"id"`
		} `json:"produtos"`
	}
	decodeJSON(t, resp, &doacao)
	require.Len(t, doacao.Produtos, 1)

	entregaResp := do(t, env.server, "PATCH", "/v1/doacoes/"+doacao.ID+"/entregar", nil, env.token)
	require.Equal(t, http.StatusOK, entregaResp.StatusCode)
	entregaResp.Body.Close()

	return doacao.ID, doacao.Produtos[0].ID
}

func getProduto(t *testing.T, env *testEnv, id string) (unidade int, ativo bool) {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/produtos/"+id, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p struct {
		Unidade int  `json:"unidade"`
		Ativo   bool `json:"ativo"`
	}
	decodeJSON(t, resp, &p)
	return p.Unidade, p.Ativo
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloCompletoDeDoacao(t *testing.T) {
	env := setupTestEnv(t)

	doadorID := criarDoador(t, env, "ciclo@e2e.test")
	familiaID := criarFamilia(t, env, "111.222.333-44")
	_, produtoID := criarDoacaoEntregue(t, env, doadorID, "Arroz 5kg", 10)

	// Produto aparece como disponível após a entrega
	dispResp := do(t, env.server, "GET", "/v1/produtos/disponiveis", nil, env.token)
	require.Equal(t, http.StatusOK, dispResp.StatusCode)
	var disponiveis []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, dispResp, &disponiveis)
	require.Len(t, disponiveis, 1)
	assert.Equal(t, produtoID, disponiveis[0].ID)

	// Aloca 4 unidades para a família
	alocResp := do(t, env.server, "POST", "/v1/doacoes-familias", jsonBody(t, map[string]any{
		"familia_id": familiaID,
		"produto_id": produtoID,
		"quantidade": 4,
		"data":       "2026-08-10",
	}), env.token)
	require.Equal(t, http.StatusCreated, alocResp.StatusCode)
	alocResp.Body.Close()

	unidade, ativo := getProduto(t, env, produtoID)
	assert.Equal(t, 6, unidade)
	assert.True(t, ativo)

	// O movimento de estoque ficou registrado
	movResp := do(t, env.server, "GET", "/v1/produtos/"+produtoID+"/movimentos", nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movs []struct {
		Tipo       string `json:"tipo"`
		Quantidade int    `json:"quantidade"`
	}
	decodeJSON(t, movResp, &movs)
	require.Len(t, movs, 1)
	assert.Equal(t, -4, movs[0].Quantidade)
}

func TestE2E_AlocacoesConcorrentesNaoPerdemAtualizacao(t *testing.T) {
	env := setupTestEnv(t)

	doadorID := criarDoador(t, env, "concorrente@e2e.test")
	familiaID := criarFamilia(t, env, "222.333.444-55")
	_, produtoID := criarDoacaoEntregue(t, env, doadorID, "Feijão 1kg", 5)

	// Duas alocações de 3 unidades disparadas ao mesmo tempo sobre estoque 5.
	// Política padrão: ambas aplicam; o resultado é -1, nunca 2.
	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := do(t, env.server, "POST", "/v1/doacoes-familias", jsonBody(t, map[string]any{
				"familia_id": familiaID,
				"produto_id": produtoID,
				"quantidade": 3,
				"data":       "2026-08-10",
			}), env.token)
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, http.StatusCreated, statuses[0])
	assert.Equal(t, http.StatusCreated, statuses[1])

	unidade, ativo := getProduto(t, env, produtoID)
	assert.Equal(t, -1, unidade)
	assert.False(t, ativo)
}

func TestE2E_RemocoesConcorrentesCreditamUmaVez(t *testing.T) {
	env := setupTestEnv(t)

	doadorID := criarDoador(t, env, "remocao@e2e.test")
	familiaID := criarFamilia(t, env, "333.444.555-66")
	_, produtoID := criarDoacaoEntregue(t, env, doadorID, "Açúcar 1kg", 8)

	resp := do(t, env.server, "POST", "/v1/doacoes-familias", jsonBody(t, map[string]any{
		"familia_id": familiaID,
		"produto_id": produtoID,
		"quantidade": 5,
		"data":       "2026-08-10",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var alocacao struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &alocacao)

	unidade, _ := getProduto(t, env, produtoID)
	require.Equal(t, 3, unidade)

	// Dois DELETEs simultâneos da mesma alocação: exatamente um remove e
	// credita; o outro recebe 404. O estoque volta a 8, nunca 13.
	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := do(t, env.server, "DELETE", "/v1/doacoes-familias/"+alocacao.ID, nil, env.token)
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusNoContent, http.StatusNotFound}, statuses)

	unidade, ativo := getProduto(t, env, produtoID)
	assert.Equal(t, 8, unidade)
	assert.True(t, ativo)
}

func TestE2E_RegistroDeDoacaoAtomico(t *testing.T) {
	env := setupTestEnv(t)
	doadorID := criarDoador(t, env, "atomico@e2e.test")

	// Segundo produto inválido (unidade 0) → 422 e nenhum produto persiste.
	resp := do(t, env.server, "POST", "/v1/doacoes", jsonBody(t, map[string]any{
		"data_doacao":  "2026-08-01",
		"data_entrada": "2026-08-02",
		"doador_id":    doadorID,
		"produtos": []map[string]any{
			{"nome": "Arroz 5kg", "unidade": 10, "validade": "2026-12-31", "data": "2026-08-02"},
			{"nome": "Feijão 1kg", "unidade": 0, "validade": "2026-12-31", "data": "2026-08-02"},
		},
	}), env.token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	listResp := do(t, env.server, "GET", "/v1/produtos", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var produtos []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, listResp, &produtos)
	assert.Empty(t, produtos)

	doacoesResp := do(t, env.server, "GET", "/v1/doacoes", nil, env.token)
	require.Equal(t, http.StatusOK, doacoesResp.StatusCode)
	var doacoes []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, doacoesResp, &doacoes)
	assert.Empty(t, doacoes)
}

func TestE2E_RemoverDoacaoComAlocacoes(t *testing.T) {
	env := setupTestEnv(t)

	doadorID := criarDoador(t, env, "remocao@e2e.test")
	familiaID := criarFamilia(t, env, "333.444.555-66")
	doacaoID, produtoID := criarDoacaoEntregue(t, env, doadorID, "Óleo 900ml", 8)

	alocResp := do(t, env.server, "POST", "/v1/doacoes-familias", jsonBody(t, map[string]any{
		"familia_id": familiaID,
		"produto_id": produtoID,
		"quantidade": 2,
		"data":       "2026-08-10",
	}), env.token)
	require.Equal(t, http.StatusCreated, alocResp.StatusCode)
	var aloc struct {
		ID string `json:"id"`
	}
	decodeJSON(t, alocResp, &aloc)

	// Recusada enquanto a alocação existir
	delResp := do(t, env.server, "DELETE", "/v1/doacoes/"+doacaoID, nil, env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, delResp.StatusCode)
	delResp.Body.Close()

	// Desfaz a alocação — o estoque volta ao original
	remAlocResp := do(t, env.server, "DELETE", "/v1/doacoes-familias/"+aloc.ID, nil, env.token)
	require.Equal(t, http.StatusNoContent, remAlocResp.StatusCode)
	remAlocResp.Body.Close()

	unidade, _ := getProduto(t, env, produtoID)
	assert.Equal(t, 8, unidade)

	// Agora a remoção passa
	delResp = do(t, env.server, "DELETE", "/v1/doacoes/"+doacaoID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	getResp := do(t, env.server, "GET", "/v1/produtos/"+produtoID, nil, env.token)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	getResp.Body.Close()
}

func TestE2E_ComprovanteDeDoacaoEntregue(t *testing.T) {
	env := setupTestEnv(t)

	doadorID := criarDoador(t, env, "comprovante@e2e.test")
	doacaoID, _ := criarDoacaoEntregue(t, env, doadorID, "Leite 1L", 12)

	resp := do(t, env.server, "GET", fmt.Sprintf("/v1/doacoes/%s/comprovante", doacaoID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}
