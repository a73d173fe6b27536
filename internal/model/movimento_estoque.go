package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimentoEstoque registra cada ajuste de estoque aplicado a um produto.
// É criado na mesma transação do ajuste, nunca fora dela.
type MovimentoEstoque struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo            string    `gorm:"not null"` // "doacao_familia" | "reversao" | "ajuste_diferenca" | "troca_produto"
	Quantidade      int       `gorm:"not null"` // positivo = entrada, negativo = saída
	EstoqueAnterior int       `gorm:"not null"`
	EstoqueNovo     int       `gorm:"not null"`
	Motivo          string
	ReferenciaID    *uuid.UUID `gorm:"type:uuid"` // doacao_familia_id que originou o ajuste
	CreatedAt       time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// TableName evita a pluralização automática do GORM.
func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
