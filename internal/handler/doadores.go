package handler

import (
	"net/http"

	"github.com/glaucoaluno/AjudaOngs/internal/apierror"
	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoadoresHandler struct{ svc service.DoadorService }

func NewDoadoresHandler(svc service.DoadorService) *DoadoresHandler {
	return &DoadoresHandler{svc: svc}
}

// Criar godoc
// @Summary      Cadastrar doador
// @Tags         doadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarDoadorRequest true "Dados do doador"
// @Success      201  {object} dto.DoadorResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/doadores [post]
func (h *DoadoresHandler) Criar(c *gin.Context) {
	var req dto.CriarDoadorRequest
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

func (h *DoadoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar doadores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DoadoresHandler) ObterPorID(c *gin.Context) {
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

// BuscarPorEmail godoc
// @Summary      Buscar doador por e-mail
// @Tags         doadores
// @Produce      json
// @Security     BearerAuth
// @Param        email path string true "E-mail do doador"
// @Success      200  {object} dto.DoadorResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/doadores/buscar/{email} [get]
func (h *DoadoresHandler) BuscarPorEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, apierror.New("E-mail invalido"))
		return
	}
	resp, err := h.svc.BuscarPorEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DoadoresHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarDoadorRequest
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

func (h *DoadoresHandler) Remover(c *gin.Context) {
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
