package handler

import (
	"net/http"

	"github.com/glaucoaluno/AjudaOngs/internal/apierror"
	"github.com/glaucoaluno/AjudaOngs/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar todos os produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProdutoResponse
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarDisponiveis godoc
// @Summary      Listar produtos disponíveis para alocação
// @Description  Apenas produtos ativos de doações já entregues à organização.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProdutoResponse
// @Router       /v1/produtos/disponiveis [get]
func (h *ProdutosHandler) ListarDisponiveis(c *gin.Context) {
	resp, err := h.svc.ListarDisponiveis(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutosHandler) ObterPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimentos godoc
// @Summary      Histórico de movimentos de estoque do produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      200 {array} dto.MovimentoEstoqueResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id}/movimentos [get]
func (h *ProdutosHandler) ListarMovimentos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarMovimentos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
