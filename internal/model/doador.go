package model

import (
	"time"

	"github.com/google/uuid"
)

// Doador representa quem contribui com doações.
type Doador struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome         string    `gorm:"type:varchar(50);not null"`
	Email        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Telefone     string    `gorm:"type:varchar(30);not null"`
	Endereco     string    `gorm:"type:varchar(50);not null"`
	DataCadastro time.Time `gorm:"not null;default:now()"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Doacoes []Doacao `gorm:"foreignKey:DoadorID"`
}

func (Doador) TableName() string { return "doadores" }
