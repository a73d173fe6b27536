package dto

type CriarFamiliaRequest struct {
	NomeRepresentante string `json:"nome_representante" validate:"required,max=30"`
	CpfResponsavel    string `json:"cpf_responsavel"    validate:"required,max=15"`
	Telefone          string `json:"telefone"           validate:"required,max=15"`
	Endereco          string `json:"endereco"           validate:"required,max=30"`
}

type AtualizarFamiliaRequest struct {
	NomeRepresentante *string `json:"nome_representante" validate:"omitempty,max=30"`
	CpfResponsavel    *string `json:"cpf_responsavel"    validate:"omitempty,max=15"`
	Telefone          *string `json:"telefone"           validate:"omitempty,max=15"`
	Endereco          *string `json:"endereco"           validate:"omitempty,max=30"`
}

type FamiliaResponse struct {
	ID                string `json:"id"`
	NomeRepresentante string `json:"nome_representante"`
	CpfResponsavel    string `json:"cpf_responsavel"`
	Telefone          string `json:"telefone"`
	Endereco          string `json:"endereco"`
	DataCadastro      string `json:"data_cadastro"`
}
