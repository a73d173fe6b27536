package repository

import (
	"context"
	"time"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoacaoRepository defines the data access contract for donation batches.
type DoacaoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Doacao, error)
	List(ctx context.Context) ([]model.Doacao, error)
	MarcarEntregue(ctx context.Context, id uuid.UUID, quando time.Time) error

	CreateTx(tx *gorm.DB, d *model.Doacao) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type doacaoRepo struct{ db *gorm.DB }

func NewDoacaoRepository(db *gorm.DB) DoacaoRepository { return &doacaoRepo{db: db} }

func (r *doacaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Doacao, error) {
	var d model.Doacao
	err := r.db.WithContext(ctx).Preload("Doador").Preload("Produtos").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *doacaoRepo) List(ctx context.Context) ([]model.Doacao, error) {
	var doacoes []model.Doacao
	err := r.db.WithContext(ctx).Preload("Doador").Preload("Produtos").
		Order("data_entrada DESC").Find(&doacoes).Error
	return doacoes, err
}

func (r *doacaoRepo) MarcarEntregue(ctx context.Context, id uuid.UUID, quando time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Doacao{}).Where("id = ?", id).
		Update("data_entrega", quando)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *doacaoRepo) CreateTx(tx *gorm.DB, d *model.Doacao) error {
	return tx.Create(d).Error
}

func (r *doacaoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Doacao{}, "id = ?", id).Error
}

func (r *doacaoRepo) DB() *gorm.DB { return r.db }
