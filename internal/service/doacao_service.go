package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/infra"
	"github.com/glaucoaluno/AjudaOngs/internal/model"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"
	"github.com/glaucoaluno/AjudaOngs/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DoacaoService registra entradas de doações: a doação e todos os seus
// produtos são criados como uma unidade atômica. Também marca entregas,
// remove doações (com os produtos que possui) e gera o comprovante em PDF.
type DoacaoService interface {
	Registrar(ctx context.Context, req dto.RegistrarDoacaoRequest) (*dto.DoacaoResponse, error)
	MarcarEntregue(ctx context.Context, id uuid.UUID) (*dto.DoacaoResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DoacaoResponse, error)
	Listar(ctx context.Context) ([]dto.DoacaoResponse, error)
	GerarComprovante(ctx context.Context, id uuid.UUID) (string, error)
}

type doacaoService struct {
	repo        repository.DoacaoRepository
	produtoRepo repository.ProdutoRepository
	doadorRepo  repository.DoadorRepository
	dispatcher  *worker.Dispatcher
	rdb         *redis.Client
	pdfPath     string
}

func NewDoacaoService(
	repo repository.DoacaoRepository,
	produtoRepo repository.ProdutoRepository,
	doadorRepo repository.DoadorRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
	pdfPath string,
) DoacaoService {
	return &doacaoService{
		repo:        repo,
		produtoRepo: produtoRepo,
		doadorRepo:  doadorRepo,
		dispatcher:  dispatcher,
		rdb:         rdb,
		pdfPath:     pdfPath,
	}
}

// parseData converte datas no formato da API (YYYY-MM-DD).
func parseData(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ── Registrar ────────────────────────────────────────────────────────────────
// Tudo ou nada: se a doação ou qualquer produto falhar, nada persiste.

func (s *doacaoService) Registrar(ctx context.Context, req dto.RegistrarDoacaoRequest) (*dto.DoacaoResponse, error) {
	doadorID, err := uuid.Parse(req.DoadorID)
	if err != nil {
		return nil, invalido("doador_id inválido")
	}
	if len(req.Produtos) == 0 {
		return nil, invalido("a doação precisa de pelo menos um produto")
	}

	if _, err := s.doadorRepo.FindByID(ctx, doadorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doador")
		}
		return nil, err
	}

	dataDoacao, err := parseData(req.DataDoacao)
	if err != nil {
		return nil, invalido("data_doacao inválida")
	}
	dataEntrada, err := parseData(req.DataEntrada)
	if err != nil {
		return nil, invalido("data_entrada inválida")
	}
	var dataEntrega *time.Time
	if req.DataEntrega != nil {
		d, err := parseData(*req.DataEntrega)
		if err != nil {
			return nil, invalido("data_entrega inválida")
		}
		dataEntrega = &d
	}

	doacao := model.Doacao{
		DataDoacao:  dataDoacao,
		DataEntrada: dataEntrada,
		DataEntrega: dataEntrega,
		DoadorID:    doadorID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &doacao); err != nil {
			return err
		}
		for _, pd := range req.Produtos {
			dataProduto, err := parseData(pd.Data)
			if err != nil {
				return invalido(fmt.Sprintf("data do produto %q inválida", pd.Nome))
			}
			p := model.Produto{
				Nome:      pd.Nome,
				Unidade:   pd.Unidade,
				Validade:  pd.Validade,
				Descricao: pd.Descricao,
				DoacaoID:  doacao.ID,
				Data:      dataProduto,
				Ativo:     pd.Unidade > 0,
			}
			if err := s.produtoRepo.CreateTx(tx, &p); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	invalidarCacheProdutos(ctx, s.rdb)

	criada, err := s.repo.FindByID(ctx, doacao.ID)
	if err != nil {
		return nil, err
	}
	return doacaoToResponse(criada), nil
}

// ── MarcarEntregue ───────────────────────────────────────────────────────────
// Idempotente: remarcar apenas sobrescreve o timestamp. Não toca em produtos.

func (s *doacaoService) MarcarEntregue(ctx context.Context, id uuid.UUID) (*dto.DoacaoResponse, error) {
	if err := s.repo.MarcarEntregue(ctx, id, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doação")
		}
		return nil, err
	}

	invalidarCacheProdutos(ctx, s.rdb)

	doacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Notificação por email ao doador — best-effort, fora da transação.
	if s.dispatcher != nil && doacao.Doador != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: doacao.Doador.Email,
			Subject: "Sua doação foi entregue",
			Body: fmt.Sprintf("Olá %s, a doação registrada em %s foi entregue às famílias beneficiadas. Obrigado!",
				doacao.Doador.Nome, doacao.DataEntrada.Format("02/01/2006")),
		})
	}

	return doacaoToResponse(doacao), nil
}

// ── Remover ──────────────────────────────────────────────────────────────────
// A doação é dona dos seus produtos: a remoção apaga a coleção explicitamente,
// na mesma transação, e é recusada enquanto algum produto ainda tiver
// alocações para famílias.

func (s *doacaoService) Remover(ctx context.Context, id uuid.UUID) error {
	doacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return naoEncontrado("doação")
		}
		return err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i := range doacao.Produtos {
			n, err := s.produtoRepo.CountAlocacoesTx(tx, doacao.Produtos[i].ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return invalido(fmt.Sprintf("produto %q possui doações para famílias", doacao.Produtos[i].Nome))
			}
		}
		if err := s.produtoRepo.DeleteByDoacaoTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}

	invalidarCacheProdutos(ctx, s.rdb)
	return nil
}

func (s *doacaoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DoacaoResponse, error) {
	doacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, naoEncontrado("doação")
		}
		return nil, err
	}
	return doacaoToResponse(doacao), nil
}

func (s *doacaoService) Listar(ctx context.Context) ([]dto.DoacaoResponse, error) {
	doacoes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoacaoResponse, 0, len(doacoes))
	for i := range doacoes {
		out = append(out, *doacaoToResponse(&doacoes[i]))
	}
	return out, nil
}

// GerarComprovante produz o PDF de comprovante de uma doação entregue e
// devolve o caminho do arquivo gerado.
func (s *doacaoService) GerarComprovante(ctx context.Context, id uuid.UUID) (string, error) {
	doacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", naoEncontrado("doação")
		}
		return "", err
	}
	if doacao.DataEntrega == nil {
		return "", invalido("a doação ainda não foi entregue")
	}
	return infra.GerarComprovantePDF(doacao, s.pdfPath)
}

func doacaoToResponse(d *model.Doacao) *dto.DoacaoResponse {
	resp := &dto.DoacaoResponse{
		ID:          d.ID.String(),
		DataDoacao:  d.DataDoacao.Format("2006-01-02"),
		DataEntrada: d.DataEntrada.Format("2006-01-02"),
		CreatedAt:   d.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Produtos:    make([]dto.ProdutoResponse, 0, len(d.Produtos)),
	}
	if d.DataEntrega != nil {
		s := d.DataEntrega.Format("2006-01-02")
		resp.DataEntrega = &s
	}
	if d.Doador != nil {
		resp.Doador = doadorToResponse(d.Doador)
	}
	for i := range d.Produtos {
		resp.Produtos = append(resp.Produtos, *produtoToResponse(&d.Produtos[i]))
	}
	return resp
}
