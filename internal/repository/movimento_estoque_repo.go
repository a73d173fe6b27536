package repository

import (
	"context"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimentoEstoqueRepository persists the stock movement audit trail.
type MovimentoEstoqueRepository interface {
	// RegistrarTx writes a movement inside the adjustment's transaction.
	RegistrarTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error)
}

type movimentoEstoqueRepo struct{ db *gorm.DB }

func NewMovimentoEstoqueRepository(db *gorm.DB) MovimentoEstoqueRepository {
	return &movimentoEstoqueRepo{db: db}
}

func (r *movimentoEstoqueRepo) RegistrarTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoEstoqueRepo) ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}
