package dto

type CriarDoadorRequest struct {
	Nome     string `json:"nome"     validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email,max=50"`
	Telefone string `json:"telefone" validate:"required,max=30"`
	Endereco string `json:"endereco" validate:"required,max=50"`
}

// AtualizarDoadorRequest aceita atualização parcial: campos nil não mudam.
type AtualizarDoadorRequest struct {
	Nome     *string `json:"nome"     validate:"omitempty,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email,max=50"`
	Telefone *string `json:"telefone" validate:"omitempty,max=30"`
	Endereco *string `json:"endereco" validate:"omitempty,max=50"`
}

type DoadorResponse struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Telefone     string `json:"telefone"`
	Endereco     string `json:"endereco"`
	DataCadastro string `json:"data_cadastro"`
}
