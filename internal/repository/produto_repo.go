package repository

import (
	"context"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProdutoRepository defines the data access contract for product lots.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProdutoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
	// ListDisponiveis returns products whose owning donation was delivered
	// (data_entrega is set) — only those can be allocated to families.
	ListDisponiveis(ctx context.Context) ([]model.Produto, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, p *model.Produto) error
	// FindByIDForUpdateTx reads the product row with a row-level lock so that
	// concurrent stock adjustments on the same product serialize.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	// UpdateEstoqueTx persists the new quantity/active pair. Nothing else may
	// write to unidade or ativo.
	UpdateEstoqueTx(tx *gorm.DB, id uuid.UUID, unidade int, ativo bool) error
	CountAlocacoesTx(tx *gorm.DB, produtoID uuid.UUID) (int64, error)
	DeleteByDoacaoTx(tx *gorm.DB, doacaoID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Doacao.Doador").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Preload("Doacao.Doador").Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) ListDisponiveis(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Joins("JOIN doacoes ON doacoes.id = produtos.doacao_id").
		Where("doacoes.data_entrega IS NOT NULL").
		Preload("Doacao.Doador").
		Order("produtos.nome ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) CreateTx(tx *gorm.DB, p *model.Produto) error {
	return tx.Create(p).Error
}

func (r *produtoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) UpdateEstoqueTx(tx *gorm.DB, id uuid.UUID, unidade int, ativo bool) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).Updates(map[string]interface{}{
		"unidade": unidade,
		"ativo":   ativo,
	}).Error
}

func (r *produtoRepo) CountAlocacoesTx(tx *gorm.DB, produtoID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.DoacaoFamilia{}).Where("produto_id = ?", produtoID).Count(&n).Error
	return n, err
}

func (r *produtoRepo) DeleteByDoacaoTx(tx *gorm.DB, doacaoID uuid.UUID) error {
	return tx.Where("doacao_id = ?", doacaoID).Delete(&model.Produto{}).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
