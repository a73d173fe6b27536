package model

import (
	"time"

	"github.com/google/uuid"
)

// Doacao é a entrada de um doador: um lote de produtos recebidos juntos.
// DataEntrega permanece nula até a doação ser marcada como entregue;
// só então os produtos ficam disponíveis para distribuição às famílias.
type Doacao struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DataDoacao  time.Time  `gorm:"not null"`
	DataEntrada time.Time  `gorm:"not null"`
	DataEntrega *time.Time `gorm:"index"`
	DoadorID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Doador   *Doador   `gorm:"foreignKey:DoadorID"`
	Produtos []Produto `gorm:"foreignKey:DoacaoID"`
}

func (Doacao) TableName() string { return "doacoes" }
