package sourcing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de fontes de dados
var (
	// Erros de banco de dados
	ErrFetchActivity = errors.New("erro ao listar atividade de plataformas no banco")

	// Erros de serviços externos
	ErrCollectorUnavailable = errors.New("collector indisponível")
)

// SourcingError é um erro com contexto adicional para fontes de dados
type SourcingError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SourcingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SourcingError) Unwrap() error {
	return e.Err
}

// NewSourcingError cria um novo SourcingError
func NewSourcingError(err error, code string, details string) *SourcingError {
	return &SourcingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
