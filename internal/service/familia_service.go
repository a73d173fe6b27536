package service

import (
	"context"
	"errors"

	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FamiliaService — CRUD de famílias beneficiadas.
type FamiliaService interface {
	Criar(ctx context.Context, req dto.CriarFamiliaRequest) (*dto.FamiliaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FamiliaResponse, error)
	Listar(ctx context.Context) ([]dto.FamiliaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFamiliaRequest) (*dto.FamiliaResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
}

type familiaService struct {
	repo repository.FamiliaRepository
}

func NewFamiliaService(repo repository.FamiliaRepository) FamiliaService {
	return &familiaService{repo: repo}
}

func (s *familiaService) Criar(ctx context.Context, req dto.CriarFamiliaRequest) (*dto.FamiliaResponse, error) {
	if _, err := s.repo.FindByCpf(ctx, req.CpfResponsavel); err == nil {
		return nil, invalido("já existe uma família com este CPF de responsável")
	}
	f := model.FamiliaBeneficiada{
		NomeRepresentante: req.NomeRepresentante,
		CpfResponsavel:    req.CpfResponsavel,
		Telefone:          req.Telefone,
		Endereco:          req.Endereco,
	}
	if err := s.repo.Create(ctx, &f); err != nil {
		return nil, err
	}
	return familiaToResponse(&f), nil
}

func (s *familiaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FamiliaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("família")
		}
		return nil, err
	}
	return familiaToResponse(f), nil
}

func (s *familiaService) Listar(ctx context.Context) ([]dto.FamiliaResponse, error) {
	familias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FamiliaResponse, 0, len(familias))
	for i := range familias {
		out = append(out, *familiaToResponse(&familias[i]))
	}
	return out, nil
}

func (s *familiaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFamiliaRequest) (*dto.FamiliaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("família")
		}
		return nil, err
	}
	if req.CpfResponsavel != nil && *req.CpfResponsavel != f.CpfResponsavel {
		if _, err := s.repo.FindByCpf(ctx, *req.CpfResponsavel); err == nil {
			return nil, invalido("já existe uma família com este CPF de responsável")
		}
		f.CpfResponsavel = *req.CpfResponsavel
	}
	if req.NomeRepresentante != nil {
		f.NomeRepresentante = *req.NomeRepresentante
	}
	if req.Telefone != nil {
		f.Telefone = *req.Telefone
	}
	if req.Endereco != nil {
		f.Endereco = *req.Endereco
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return familiaToResponse(f), nil
}

func (s *familiaService) Remover(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return naoEncontrado("família")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func familiaToResponse(f *model.FamiliaBeneficiada) *dto.FamiliaResponse {
	return &dto.FamiliaResponse{
		ID:                f.ID.String(),
		NomeRepresentante: f.NomeRepresentante,
		CpfResponsavel:    f.CpfResponsavel,
		Telefone:          f.Telefone,
		Endereco:          f.Endereco,
		DataCadastro:      f.DataCadastro.Format("2006-01-02T15:04:05Z"),
	}
}
