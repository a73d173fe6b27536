package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProdutoEntradaRequest é um item da lista de produtos de uma nova doação.
type ProdutoEntradaRequest struct {
	Nome      string  `json:"nome"      validate:"required,max=50"`
	Unidade   int     `json:"unidade"   validate:"required,min=1"`
	Validade  string  `json:"validade"  validate:"required,max=10"`
	Descricao *string `json:"descricao"`
	Data      string  `json:"data"      validate:"required,datetime=2006-01-02"`
}

// RegistrarDoacaoRequest cria a doação e todos os seus produtos de uma vez.
type RegistrarDoacaoRequest struct {
	DataDoacao  string                  `json:"data_doacao"  validate:"required,datetime=2006-01-02"`
	DataEntrada string                  `json:"data_entrada" validate:"required,datetime=2006-01-02"`
	DataEntrega *string                 `json:"data_entrega" validate:"omitempty,datetime=2006-01-02"`
	DoadorID    string                  `json:"doador_id"    validate:"required,uuid"`
	Produtos    []ProdutoEntradaRequest `json:"produtos"     validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DoacaoResponse struct {
	ID          string            `json:"id"`
	DataDoacao  string            `json:"data_doacao"`
	DataEntrada string            `json:"data_entrada"`
	DataEntrega *string           `json:"data_entrega"`
	Doador      *DoadorResponse   `json:"doador,omitempty"`
	Produtos    []ProdutoResponse `json:"produtos"`
	CreatedAt   string            `json:"created_at"`
}
