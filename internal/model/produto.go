package model

import (
	"time"

	"github.com/google/uuid"
)

// Produto é um lote de produto doado, pertencente a exatamente uma doação.
// Unidade é a quantidade disponível em estoque; Ativo deriva dela
// (ativo ⇔ unidade > 0) e só é alterado pelo EstoqueService.
type Produto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"index;not null"`
	Unidade   int       `gorm:"not null;default:0"`
	Validade  string    `gorm:"type:varchar(10);not null"`
	Descricao *string
	DoacaoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Data      time.Time `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Doacao *Doacao `gorm:"foreignKey:DoacaoID"`
}
