package repository

import (
	"context"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DoacaoFamiliaRepository defines the data access contract for allocations.
// Every mutating method takes a tx: an allocation write is only valid inside
// the transaction that also carries its stock adjustment.
type DoacaoFamiliaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.DoacaoFamilia, error)
	List(ctx context.Context) ([]model.DoacaoFamilia, error)

	// FindByIDForUpdateTx reads the allocation row with a row-level lock so
	// that the compensating stock delta is computed from the committed state,
	// never from a baseline another transaction is about to change.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.DoacaoFamilia, error)

	CreateTx(tx *gorm.DB, df *model.DoacaoFamilia) error
	UpdateTx(tx *gorm.DB, df *model.DoacaoFamilia) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type doacaoFamiliaRepo struct{ db *gorm.DB }

func NewDoacaoFamiliaRepository(db *gorm.DB) DoacaoFamiliaRepository {
	return &doacaoFamiliaRepo{db: db}
}

func (r *doacaoFamiliaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DoacaoFamilia, error) {
	var df model.DoacaoFamilia
	err := r.db.WithContext(ctx).Preload("Familia").Preload("Produto").First(&df, "id = ?", id).Error
	return &df, err
}

func (r *doacaoFamiliaRepo) List(ctx context.Context) ([]model.DoacaoFamilia, error) {
	var dfs []model.DoacaoFamilia
	err := r.db.WithContext(ctx).Preload("Familia").Preload("Produto").
		Order("data DESC").Find(&dfs).Error
	return dfs, err
}

func (r *doacaoFamiliaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.DoacaoFamilia, error) {
	var df model.DoacaoFamilia
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&df, "id = ?", id).Error
	return &df, err
}

func (r *doacaoFamiliaRepo) CreateTx(tx *gorm.DB, df *model.DoacaoFamilia) error {
	return tx.Create(df).Error
}

func (r *doacaoFamiliaRepo) UpdateTx(tx *gorm.DB, df *model.DoacaoFamilia) error {
	return tx.Save(df).Error
}

func (r *doacaoFamiliaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.DoacaoFamilia{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *doacaoFamiliaRepo) DB() *gorm.DB { return r.db }
