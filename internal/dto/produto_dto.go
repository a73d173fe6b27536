package dto

type ProdutoResponse struct {
	ID        string          `json:"id"`
	Nome      string          `json:"nome"`
	Unidade   int             `json:"unidade"`
	Validade  string          `json:"validade"`
	Descricao *string         `json:"descricao"`
	DoacaoID  string          `json:"doacao_id"`
	Data      string          `json:"data"`
	Ativo     bool            `json:"ativo"`
	Doador    *DoadorResponse `json:"doador,omitempty"`
}

// MovimentoEstoqueResponse expõe o histórico de ajustes de um produto.
type MovimentoEstoqueResponse struct {
	ID              string  `json:"id"`
	ProdutoID       string  `json:"produto_id"`
	Tipo            string  `json:"tipo"`
	Quantidade      int     `json:"quantidade"`
	EstoqueAnterior int     `json:"estoque_anterior"`
	EstoqueNovo     int     `json:"estoque_novo"`
	Motivo          string  `json:"motivo"`
	ReferenciaID    *string `json:"referencia_id"`
	CreatedAt       string  `json:"created_at"`
}
