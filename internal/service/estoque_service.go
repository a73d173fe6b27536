package service

import (
	"context"
	"errors"

	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de movimento de estoque, um por evento do ciclo de vida da alocação.
const (
	MovDoacaoFamilia   = "doacao_familia"   // alocação criada (saída)
	MovReversao        = "reversao"         // alocação removida (entrada)
	MovAjusteDiferenca = "ajuste_diferenca" // quantidade da alocação alterada
	MovTrocaProduto    = "troca_produto"    // alocação movida para outro produto
)

// EstadoEstoque é o estado resultante de um ajuste.
type EstadoEstoque struct {
	Unidade int
	Ativo   bool
}

// EstoqueService é o único ponto autorizado a alterar unidade/ativo de um
// produto depois da entrada. Cada chamada aplica um delta com a linha do
// produto bloqueada (FOR UPDATE), recalcula ativo = unidade > 0 e grava o
// movimento de auditoria — tudo dentro da transação recebida.
type EstoqueService interface {
	// AjustarTx aplica delta ao estoque do produto dentro de tx.
	// Delta negativo para alocação criada, positivo para alocação desfeita.
	AjustarTx(ctx context.Context, tx *gorm.DB, produtoID uuid.UUID, delta int, tipo, motivo string, referenciaID *uuid.UUID) (*EstadoEstoque, error)
}

type estoqueService struct {
	produtoRepo   repository.ProdutoRepository
	movimentoRepo repository.MovimentoEstoqueRepository
	estrito       bool
}

// NewEstoqueService cria o serviço de estoque. estrito habilita a checagem de
// admissão opcional: ajustes que deixariam o estoque negativo são rejeitados
// em vez de aplicados.
func NewEstoqueService(produtoRepo repository.ProdutoRepository, movimentoRepo repository.MovimentoEstoqueRepository, estrito bool) EstoqueService {
	return &estoqueService{produtoRepo: produtoRepo, movimentoRepo: movimentoRepo, estrito: estrito}
}

func (s *estoqueService) AjustarTx(ctx context.Context, tx *gorm.DB, produtoID uuid.UUID, delta int, tipo, motivo string, referenciaID *uuid.UUID) (*EstadoEstoque, error) {
	p, err := s.produtoRepo.FindByIDForUpdateTx(tx, produtoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("produto")
		}
		return nil, err
	}

	novaUnidade := p.Unidade + delta
	if s.estrito && delta < 0 && novaUnidade < 0 {
		return nil, ErrEstoqueInsuficiente
	}
	ativo := novaUnidade > 0

	if err := s.produtoRepo.UpdateEstoqueTx(tx, produtoID, novaUnidade, ativo); err != nil {
		return nil, err
	}

	mov := &model.MovimentoEstoque{
		ProdutoID:       produtoID,
		Tipo:            tipo,
		Quantidade:      delta,
		EstoqueAnterior: p.Unidade,
		EstoqueNovo:     novaUnidade,
		Motivo:          motivo,
		ReferenciaID:    referenciaID,
	}
	if err := s.movimentoRepo.RegistrarTx(tx, mov); err != nil {
		return nil, err
	}

	return &EstadoEstoque{Unidade: novaUnidade, Ativo: ativo}, nil
}
