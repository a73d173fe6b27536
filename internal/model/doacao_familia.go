package model

import (
	"time"

	"github.com/google/uuid"
)

// DoacaoFamilia registra a alocação de uma quantidade de um produto para uma
// família beneficiada. Toda criação, alteração ou remoção de uma alocação é
// compensada por um ajuste de estoque no produto referenciado, dentro da
// mesma transação.
type DoacaoFamilia struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FamiliaID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProdutoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantidade int       `gorm:"not null"`
	Data       time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Familia *FamiliaBeneficiada `gorm:"foreignKey:FamiliaID"`
	Produto *Produto            `gorm:"foreignKey:ProdutoID"`
}

func (DoacaoFamilia) TableName() string { return "doacoes_familias" }
