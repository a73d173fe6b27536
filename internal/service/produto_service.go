package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	cacheKeyProdutos            = "produtos:todos"
	cacheKeyProdutosDisponiveis = "produtos:disponiveis"
	produtosCacheTTL            = 10 * time.Minute
)

// ProdutoService expõe consultas de produtos. Não há escrita aqui: produtos
// nascem pelo DoacaoService e mudam de estoque pelo EstoqueService.
type ProdutoService interface {
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	ListarDisponiveis(ctx context.Context) ([]dto.ProdutoResponse, error)
	ListarMovimentos(ctx context.Context, produtoID uuid.UUID) ([]dto.MovimentoEstoqueResponse, error)
}

type produtoService struct {
	repo          repository.ProdutoRepository
	movimentoRepo repository.MovimentoEstoqueRepository
	rdb           *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, movimentoRepo repository.MovimentoEstoqueRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, movimentoRepo: movimentoRepo, rdb: rdb}
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("produto")
		}
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	return s.listarComCache(ctx, cacheKeyProdutos, s.repo.List)
}

func (s *produtoService) ListarDisponiveis(ctx context.Context) ([]dto.ProdutoResponse, error) {
	return s.listarComCache(ctx, cacheKeyProdutosDisponiveis, s.repo.ListDisponiveis)
}

// listarComCache tenta o Redis primeiro; no miss, consulta o banco e popula o
// cache em best-effort.
func (s *produtoService) listarComCache(ctx context.Context, key string, query func(context.Context) ([]model.Produto, error)) ([]dto.ProdutoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var out []dto.ProdutoResponse
			if jsonErr := json.Unmarshal(cached, &out); jsonErr == nil {
				return out, nil
			}
		}
	}

	produtos, err := query(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, *produtoToResponse(&produtos[i]))
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(out); jsonErr == nil {
			_ = s.rdb.Set(ctx, key, b, produtosCacheTTL).Err()
		}
	}
	return out, nil
}

func (s *produtoService) ListarMovimentos(ctx context.Context, produtoID uuid.UUID) ([]dto.MovimentoEstoqueResponse, error) {
	if _, err := s.repo.FindByID(ctx, produtoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("produto")
		}
		return nil, err
	}
	movs, err := s.movimentoRepo.ListByProduto(ctx, produtoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoEstoqueResponse, 0, len(movs))
	for i := range movs {
		m := &movs[i]
		item := dto.MovimentoEstoqueResponse{
			ID:              m.ID.String(),
			ProdutoID:       m.ProdutoID.String(),
			Tipo:            m.Tipo,
			Quantidade:      m.Quantidade,
			EstoqueAnterior: m.EstoqueAnterior,
			EstoqueNovo:     m.EstoqueNovo,
			Motivo:          m.Motivo,
			CreatedAt:       m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			item.ReferenciaID = &ref
		}
		out = append(out, item)
	}
	return out, nil
}

// invalidarCacheProdutos derruba as listas cacheadas após qualquer escrita que
// afete produtos (entrada de doação, entrega, ajuste de estoque).
func invalidarCacheProdutos(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, cacheKeyProdutos, cacheKeyProdutosDisponiveis).Err()
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	resp := &dto.ProdutoResponse{
		ID:        p.ID.String(),
		Nome:      p.Nome,
		Unidade:   p.Unidade,
		Validade:  p.Validade,
		Descricao: p.Descricao,
		DoacaoID:  p.DoacaoID.String(),
		Data:      p.Data.Format("2006-01-02"),
		Ativo:     p.Ativo,
	}
	if p.Doacao != nil && p.Doacao.Doador != nil {
		resp.Doador = doadorToResponse(p.Doacao.Doador)
	}
	return resp
}
