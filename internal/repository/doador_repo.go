package repository

import (
	"context"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoadorRepository defines the data access contract for donors.
type DoadorRepository interface {
	Create(ctx context.Context, d *model.Doador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Doador, error)
	FindByEmail(ctx context.Context, email string) (*model.Doador, error)
	List(ctx context.Context) ([]model.Doador, error)
	Update(ctx context.Context, d *model.Doador) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type doadorRepo struct{ db *gorm.DB }

func NewDoadorRepository(db *gorm.DB) DoadorRepository { return &doadorRepo{db: db} }

func (r *doadorRepo) Create(ctx context.Context, d *model.Doador) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *doadorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Doador, error) {
	var d model.Doador
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *doadorRepo) FindByEmail(ctx context.Context, email string) (*model.Doador, error) {
	var d model.Doador
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&d).Error
	return &d, err
}

func (r *doadorRepo) List(ctx context.Context) ([]model.Doador, error) {
	var doadores []model.Doador
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&doadores).Error
	return doadores, err
}

func (r *doadorRepo) Update(ctx context.Context, d *model.Doador) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *doadorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Doador{}, "id = ?", id).Error
}
