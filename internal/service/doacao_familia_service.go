package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DoacaoFamiliaService é o livro-razão de distribuição: toda escrita de
// alocação executa na mesma transação que os ajustes de estoque que ela
// implica. Nunca há alocação gravada sem o ajuste correspondente, nem o
// contrário.
type DoacaoFamiliaService interface {
	Registrar(ctx context.Context, req dto.RegistrarDoacaoFamiliaRequest) (*dto.DoacaoFamiliaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDoacaoFamiliaRequest) (*dto.DoacaoFamiliaResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DoacaoFamiliaResponse, error)
	Listar(ctx context.Context) ([]dto.DoacaoFamiliaResponse, error)
}

type doacaoFamiliaService struct {
	repo        repository.DoacaoFamiliaRepository
	familiaRepo repository.FamiliaRepository
	produtoRepo repository.ProdutoRepository
	estoque     EstoqueService
	rdb         *redis.Client
}

func NewDoacaoFamiliaService(
	repo repository.DoacaoFamiliaRepository,
	familiaRepo repository.FamiliaRepository,
	produtoRepo repository.ProdutoRepository,
	estoque EstoqueService,
	rdb *redis.Client,
) DoacaoFamiliaService {
	return &doacaoFamiliaService{
		repo:        repo,
		familiaRepo: familiaRepo,
		produtoRepo: produtoRepo,
		estoque:     estoque,
		rdb:         rdb,
	}
}

// ── Registrar ────────────────────────────────────────────────────────────────
// Cria a alocação e debita o estoque do produto na mesma transação.

func (s *doacaoFamiliaService) Registrar(ctx context.Context, req dto.RegistrarDoacaoFamiliaRequest) (*dto.DoacaoFamiliaResponse, error) {
	familiaID, err := uuid.Parse(req.FamiliaID)
	if err != nil {
		return nil, invalido("familia_id inválido")
	}
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, invalido("produto_id inválido")
	}
	data, err := parseData(req.Data)
	if err != nil {
		return nil, invalido("data inválida")
	}

	if _, err := s.familiaRepo.FindByID(ctx, familiaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("família")
		}
		return nil, err
	}
	if _, err := s.produtoRepo.FindByID(ctx, produtoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("produto")
		}
		return nil, err
	}

	df := model.DoacaoFamilia{
		FamiliaID:  familiaID,
		ProdutoID:  produtoID,
		Quantidade: req.Quantidade,
		Data:       data,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &df); err != nil {
			return err
		}
		motivo := fmt.Sprintf("Doação de %d unidade(s) para família", req.Quantidade)
		_, err := s.estoque.AjustarTx(ctx, tx, produtoID, -req.Quantidade, MovDoacaoFamilia, motivo, &df.ID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	invalidarCacheProdutos(ctx, s.rdb)

	criada, err := s.repo.FindByID(ctx, df.ID)
	if err != nil {
		return nil, err
	}
	return doacaoFamiliaToResponse(criada), nil
}

// ── Atualizar ────────────────────────────────────────────────────────────────
// Ajustes compensatórios por evento:
//   - produto trocado: reverte tudo no produto antigo, debita tudo no novo
//   - só quantidade mudou: um único ajuste de (antiga − nova)
//   - nada relevante mudou: nenhum ajuste

func (s *doacaoFamiliaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDoacaoFamiliaRequest) (*dto.DoacaoFamiliaResponse, error) {
	var produtoPedido *uuid.UUID
	if req.ProdutoID != nil {
		p, err := uuid.Parse(*req.ProdutoID)
		if err != nil {
			return nil, invalido("produto_id inválido")
		}
		produtoPedido = &p
	}
	var familiaPedida *uuid.UUID
	if req.FamiliaID != nil {
		f, err := uuid.Parse(*req.FamiliaID)
		if err != nil {
			return nil, invalido("familia_id inválido")
		}
		if _, err := s.familiaRepo.FindByID(ctx, f); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, naoEncontrado("família")
			}
			return nil, err
		}
		familiaPedida = &f
	}
	var dataPedida *time.Time
	if req.Data != nil {
		d, err := parseData(*req.Data)
		if err != nil {
			return nil, invalido("data inválida")
		}
		dataPedida = &d
	}

	// A baseline dos ajustes é a linha travada dentro da transação, nunca uma
	// leitura anterior que outra transação possa ter invalidado.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		df, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return naoEncontrado("doação para família")
			}
			return err
		}

		antigoProdutoID := df.ProdutoID
		antigaQuantidade := df.Quantidade

		novoProdutoID := antigoProdutoID
		if produtoPedido != nil {
			novoProdutoID = *produtoPedido
		}
		novaQuantidade := antigaQuantidade
		if req.Quantidade != nil {
			novaQuantidade = *req.Quantidade
		}

		switch {
		case novoProdutoID != antigoProdutoID:
			// Reverte integralmente no produto antigo, depois aplica no novo.
			motivo := fmt.Sprintf("Alocação movida para outro produto (%d unidade(s) devolvidas)", antigaQuantidade)
			if _, err := s.estoque.AjustarTx(ctx, tx, antigoProdutoID, +antigaQuantidade, MovTrocaProduto, motivo, &df.ID); err != nil {
				return err
			}
			motivo = fmt.Sprintf("Doação de %d unidade(s) para família", novaQuantidade)
			if _, err := s.estoque.AjustarTx(ctx, tx, novoProdutoID, -novaQuantidade, MovDoacaoFamilia, motivo, &df.ID); err != nil {
				return err
			}
		case novaQuantidade != antigaQuantidade:
			// Exatamente um ajuste: a diferença entre as quantidades.
			motivo := fmt.Sprintf("Quantidade alterada de %d para %d", antigaQuantidade, novaQuantidade)
			if _, err := s.estoque.AjustarTx(ctx, tx, antigoProdutoID, antigaQuantidade-novaQuantidade, MovAjusteDiferenca, motivo, &df.ID); err != nil {
				return err
			}
		}

		df.ProdutoID = novoProdutoID
		df.Quantidade = novaQuantidade
		if familiaPedida != nil {
			df.FamiliaID = *familiaPedida
		}
		if dataPedida != nil {
			df.Data = *dataPedida
		}
		df.Familia = nil
		df.Produto = nil
		return s.repo.UpdateTx(tx, df)
	})
	if txErr != nil {
		return nil, txErr
	}

	invalidarCacheProdutos(ctx, s.rdb)

	atual, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doacaoFamiliaToResponse(atual), nil
}

// ── Remover ──────────────────────────────────────────────────────────────────
// Remove a alocação e devolve a quantidade ao estoque na mesma transação.

func (s *doacaoFamiliaService) Remover(ctx context.Context, id uuid.UUID) error {
	// A linha é travada e removida na mesma transação que devolve o estoque:
	// duas remoções concorrentes nunca creditam a quantidade duas vezes.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		df, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return naoEncontrado("doação para família")
			}
			return err
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return naoEncontrado("doação para família")
			}
			return err
		}
		motivo := fmt.Sprintf("Reversão de doação removida (%d unidade(s))", df.Quantidade)
		_, err = s.estoque.AjustarTx(ctx, tx, df.ProdutoID, +df.Quantidade, MovReversao, motivo, &df.ID)
		return err
	})
	if txErr != nil {
		return txErr
	}

	invalidarCacheProdutos(ctx, s.rdb)
	return nil
}

func (s *doacaoFamiliaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DoacaoFamiliaResponse, error) {
	df, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doação para família")
		}
		return nil, err
	}
	return doacaoFamiliaToResponse(df), nil
}

func (s *doacaoFamiliaService) Listar(ctx context.Context) ([]dto.DoacaoFamiliaResponse, error) {
	dfs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoacaoFamiliaResponse, 0, len(dfs))
	for i := range dfs {
		out = append(out, *doacaoFamiliaToResponse(&dfs[i]))
	}
	return out, nil
}

func doacaoFamiliaToResponse(df *model.DoacaoFamilia) *dto.DoacaoFamiliaResponse {
	resp := &dto.DoacaoFamiliaResponse{
		ID:         df.ID.String(),
		Quantidade: df.Quantidade,
		Data:       df.Data.Format("2006-01-02"),
		CreatedAt:  df.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if df.Familia != nil {
		resp.Familia = familiaToResponse(df.Familia)
	}
	if df.Produto != nil {
		resp.Produto = produtoToResponse(df.Produto)
	}
	return resp
}
