package model

import (
	"time"

	"github.com/google/uuid"
)

// FamiliaBeneficiada é uma família que recebe produtos doados.
// CpfResponsavel identifica a família de forma única.
type FamiliaBeneficiada struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeRepresentante string    `gorm:"type:varchar(30);not null"`
	CpfResponsavel    string    `gorm:"type:varchar(15);uniqueIndex;not null"`
	Telefone          string    `gorm:"type:varchar(15);not null"`
	Endereco          string    `gorm:"type:varchar(30);not null"`
	DataCadastro      time.Time `gorm:"not null;default:now()"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	DoacoesRecebidas []DoacaoFamilia `gorm:"foreignKey:FamiliaID"`
}

func (FamiliaBeneficiada) TableName() string { return "familias_beneficiadas" }
