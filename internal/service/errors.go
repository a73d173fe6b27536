package service

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by services. Handlers map them to HTTP statuses with
// errors.Is; anything unwrapped is treated as a persistence failure.
var (
	ErrNaoEncontrado = errors.New("registro não encontrado")
	ErrValidacao     = errors.New("dados inválidos")

	// ErrEstoqueInsuficiente only occurs when ESTOQUE_ESTRITO is enabled.
	ErrEstoqueInsuficiente = fmt.Errorf("estoque insuficiente: %w", ErrValidacao)
)

func naoEncontrado(entidade string) error {
	return fmt.Errorf("%s: %w", entidade, ErrNaoEncontrado)
}

func invalido(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidacao)
}
