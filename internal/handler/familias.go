package handler

import (
	"net/http"

	"github.com/glaucoaluno/AjudaOngs/internal/apierror"
	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FamiliasHandler struct{ svc service.FamiliaService }

func NewFamiliasHandler(svc service.FamiliaService) *FamiliasHandler {
	return &FamiliasHandler{svc: svc}
}

// Criar godoc
// @Summary      Cadastrar família beneficiada
// @Tags         familias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarFamiliaRequest true "Dados da família"
// @Success      201  {object} dto.FamiliaResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/familias [post]
func (h *FamiliasHandler) Criar(c *gin.Context) {
	var req dto.CriarFamiliaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FamiliasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar familias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FamiliasHandler) ObterPorID(c *gin.Context) {
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

func (h *FamiliasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarFamiliaRequest
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

func (h *FamiliasHandler) Remover(c *gin.Context) {
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
