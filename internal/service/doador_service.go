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

// DoadorService — CRUD de doadores, sem efeitos colaterais de estoque.
type DoadorService interface {
	Criar(ctx context.Context, req dto.CriarDoadorRequest) (*dto.DoadorResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DoadorResponse, error)
	BuscarPorEmail(ctx context.Context, email string) (*dto.DoadorResponse, error)
	Listar(ctx context.Context) ([]dto.DoadorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDoadorRequest) (*dto.DoadorResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
}

type doadorService struct {
	repo repository.DoadorRepository
}

func NewDoadorService(repo repository.DoadorRepository) DoadorService {
	return &doadorService{repo: repo}
}

func (s *doadorService) Criar(ctx context.Context, req dto.CriarDoadorRequest) (*dto.DoadorResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, invalido("já existe um doador com este email")
	}
	d := model.Doador{
		Nome:     req.Nome,
		Email:    req.Email,
		Telefone: req.Telefone,
		Endereco: req.Endereco,
	}
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, err
	}
	return doadorToResponse(&d), nil
}

func (s *doadorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DoadorResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doador")
		}
		return nil, err
	}
	return doadorToResponse(d), nil
}

func (s *doadorService) BuscarPorEmail(ctx context.Context, email string) (*dto.DoadorResponse, error) {
	d, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doador")
		}
		return nil, err
	}
	return doadorToResponse(d), nil
}

func (s *doadorService) Listar(ctx context.Context) ([]dto.DoadorResponse, error) {
	doadores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoadorResponse, 0, len(doadores))
	for i := range doadores {
		out = append(out, *doadorToResponse(&doadores[i]))
	}
	return out, nil
}

func (s *doadorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDoadorRequest) (*dto.DoadorResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doador")
		}
		return nil, err
	}
	if req.Email != nil && *req.Email != d.Email {
		if _, err := s.repo.FindByEmail(ctx, *req.Email); err == nil {
			return nil, invalido("já existe um doador com este email")
		}
		d.Email = *req.Email
	}
	if req.Nome != nil {
		d.Nome = *req.Nome
	}
	if req.Telefone != nil {
		d.Telefone = *req.Telefone
	}
	if req.Endereco != nil {
		d.Endereco = *req.Endereco
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return doadorToResponse(d), nil
}

func (s *doadorService) Remover(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return naoEncontrado("doador")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func doadorToResponse(d *model.Doador) *dto.DoadorResponse {
	return &dto.DoadorResponse{
		ID:           d.ID.String(),
		Nome:         d.Nome,
		Email:        d.Email,
		Telefone:     d.Telefone,
		Endereco:     d.Endereco,
		DataCadastro: d.DataCadastro.Format("2006-01-02T15:04:05Z"),
	}
}
