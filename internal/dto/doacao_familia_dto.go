package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarDoacaoFamiliaRequest struct {
	FamiliaID  string `json:"familia_id"  validate:"required,uuid"`
	ProdutoID  string `json:"produto_id"  validate:"required,uuid"`
	Quantidade int    `json:"quantidade"  validate:"required,min=1"`
	Data       string `json:"data"        validate:"required,datetime=2006-01-02"`
}

// AtualizarDoacaoFamiliaRequest aceita atualização parcial. Mudança de
// quantidade e/ou de produto dispara os ajustes de estoque compensatórios.
type AtualizarDoacaoFamiliaRequest struct {
	FamiliaID  *string `json:"familia_id"  validate:"omitempty,uuid"`
	ProdutoID  *string `json:"produto_id"  validate:"omitempty,uuid"`
	Quantidade *int    `json:"quantidade"  validate:"omitempty,min=1"`
	Data       *string `json:"data"        validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DoacaoFamiliaResponse struct {
	ID         string           `json:"id"`
	Quantidade int              `json:"quantidade"`
	Data       string           `json:"data"`
	Familia    *FamiliaResponse `json:"familia,omitempty"`
	Produto    *ProdutoResponse `json:"produto,omitempty"`
	CreatedAt  string           `json:"created_at"`
}
