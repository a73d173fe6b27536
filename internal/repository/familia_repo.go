package repository

import (
	"context"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FamiliaRepository defines the data access contract for beneficiary families.
type FamiliaRepository interface {
	Create(ctx context.Context, f *model.FamiliaBeneficiada) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FamiliaBeneficiada, error)
	FindByCpf(ctx context.Context, cpf string) (*model.FamiliaBeneficiada, error)
	List(ctx context.Context) ([]model.FamiliaBeneficiada, error)
	Update(ctx context.Context, f *model.FamiliaBeneficiada) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type familiaRepo struct{ db *gorm.DB }

func NewFamiliaRepository(db *gorm.DB) FamiliaRepository { return &familiaRepo{db: db} }

func (r *familiaRepo) Create(ctx context.Context, f *model.FamiliaBeneficiada) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *familiaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FamiliaBeneficiada, error) {
	var f model.FamiliaBeneficiada
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *familiaRepo) FindByCpf(ctx context.Context, cpf string) (*model.FamiliaBeneficiada, error) {
	var f model.FamiliaBeneficiada
	err := r.db.WithContext(ctx).Where("cpf_responsavel = ?", cpf).First(&f).Error
	return &f, err
}

func (r *familiaRepo) List(ctx context.Context) ([]model.FamiliaBeneficiada, error) {
	var familias []model.FamiliaBeneficiada
	err := r.db.WithContext(ctx).Order("nome_representante ASC").Find(&familias).Error
	return familias, err
}

func (r *familiaRepo) Update(ctx context.Context, f *model.FamiliaBeneficiada) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *familiaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FamiliaBeneficiada{}, "id = ?", id).Error
}
