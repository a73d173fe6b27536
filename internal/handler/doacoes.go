package handler

import (
	"net/http"

	"github.com/glaucoaluno/AjudaOngs/internal/apierror"
	"github.com/glaucoaluno/AjudaOngs/internal/dto"
	"github.com/glaucoaluno/AjudaOngs/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoacoesHandler struct{ svc service.DoacaoService }

func NewDoacoesHandler(svc service.DoacaoService) *DoacoesHandler {
	return &DoacoesHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar lote de doação
// @Description  Cria a doação e seus produtos em uma única transação. Nenhum produto é gravado se a validação de qualquer item falhar.
// @Tags         doacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarDoacaoRequest true "Doação com produtos"
// @Success      201  {object} dto.DoacaoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/doacoes [post]
func (h *DoacoesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarDoacaoRequest
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

func (h *DoacoesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar doacoes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DoacoesHandler) ObterPorID(c *gin.Context) {
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

// MarcarEntregue godoc
// @Summary      Marcar doação como entregue
// @Description  Define a data de entrega e dispara a notificação ao doador. Idempotente: repetir a chamada não altera a data original.
// @Tags         doacoes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da doação"
// @Success      200  {object} dto.DoacaoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/doacoes/{id}/entregar [patch]
func (h *DoacoesHandler) MarcarEntregue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.MarcarEntregue(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GerarComprovante godoc
// @Summary      Comprovante de doação em PDF
// @Tags         doacoes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID da doação"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/doacoes/{id}/comprovante [get]
func (h *DoacoesHandler) GerarComprovante(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.GerarComprovante(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "comprovante-"+id.String()+".pdf")
}

// Remover godoc
// @Summary      Excluir doação
// @Description  Remove a doação e seus produtos. Recusada enquanto algum produto do lote tiver alocações a famílias.
// @Tags         doacoes
// @Security     BearerAuth
// @Param        id path string true "UUID da doação"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/doacoes/{id} [delete]
func (h *DoacoesHandler) Remover(c *gin.Context) {
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
