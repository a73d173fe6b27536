package service

import (
	"context"
	"testing"

	"github.com/glaucoaluno/AjudaOngs/internal/config"
	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Ativo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "segredo-de-teste",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, email, password string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		ID:           uuid.New(),
		Nome:         "Voluntário Teste",
		Email:        email,
		PasswordHash: string(hash),
		Ativo:        true,
	}
	repo.usuarios[u.ID] = u
	return u
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "ana@ong.org", "senha-forte")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@ong.org",
		Password: "senha-forte",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ana@ong.org", resp.User.Email)
}

func TestLoginSenhaErrada(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "ana@ong.org", "senha-forte")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@ong.org",
		Password: "senha-errada",
	})
	assert.Error(t, err)
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ninguem@ong.org",
		Password: "qualquer",
	})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "ana@ong.org", "senha-forte")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@ong.org",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "ana@ong.org", renovado.User.Email)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "token-qualquer")
	assert.Error(t, err)
}

func TestCriarUsuario(t *testing.T) {
	svc, repo := newAuthFixture(t)

	resp, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Nome:     "Novo Voluntário",
		Email:    "novo@ong.org",
		Password: "senha-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, "novo@ong.org", resp.Email)
	assert.Len(t, repo.usuarios, 1)
}

func TestCriarUsuarioEmailDuplicado(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "ana@ong.org", "senha-forte")

	_, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Nome:     "Outra Ana",
		Email:    "ana@ong.org",
		Password: "senha-segura",
	})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestObterUsuario(t *testing.T) {
	svc, repo := newAuthFixture(t)
	u := seedUsuario(t, repo, "ana@ong.org", "senha-forte")

	resp, err := svc.ObterUsuario(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), resp.ID)
	assert.Equal(t, "ana@ong.org", resp.Email)
}

func TestObterUsuarioInexistente(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ObterUsuario(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}
