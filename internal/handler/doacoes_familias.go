package handler

import (
	"net/http"

	"github.com/glaucoaluno/AjudaOngs/internal/apierror"
	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoacoesFamiliasHandler struct{ svc service.DoacaoFamiliaService }

func NewDoacoesFamiliasHandler(svc service.DoacaoFamiliaService) *DoacoesFamiliasHandler {
	return &DoacoesFamiliasHandler{svc: svc}
}

// Registrar godoc
// @Summary      Alocar produto a uma família
// @Description  Grava a alocação e desconta a quantidade do estoque do produto na mesma transação.
// @Tags         doacoes-familias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarDoacaoFamiliaRequest true "Alocação"
// @Success      201  {object} dto.DoacaoFamiliaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/doacoes-familias [post]
func (h *DoacoesFamiliasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarDoacaoFamiliaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DoacoesFamiliasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar alocacoes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DoacoesFamiliasHandler) ObterPorID(c *gin.Context) {
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

// Atualizar godoc
// @Summary      Atualizar alocação
// @Description  Ajusta o estoque pela diferença quando a quantidade muda; devolve ao produto antigo e desconta do novo quando o produto muda.
// @Tags         doacoes-familias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da alocação"
// @Param        body body dto.AtualizarDoacaoFamiliaRequest true "Campos a alterar"
// @Success      200  {object} dto.DoacaoFamiliaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/doacoes-familias/{id} [put]
func (h *DoacoesFamiliasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarDoacaoFamiliaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remover godoc
// @Summary      Desfazer alocação
// @Description  Remove a alocação e devolve a quantidade ao estoque do produto na mesma transação.
// @Tags         doacoes-familias
// @Security     BearerAuth
// @Param        id path string true "UUID da alocação"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/doacoes-familias/{id} [delete]
func (h *DoacoesFamiliasHandler) Remover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
