package domain

import (
	"time"
)

// RangeWindow é o intervalo semiaberto [Start, End) derivado de um token de
// range. End é sempre a meia-noite do dia corrente, portanto o dia de hoje
// (incompleto) nunca entra na janela. Efêmero: recalculado a cada chamada.
type RangeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains verifica se o instante pertence à janela (Start inclusivo, End
// exclusivo).
func (w RangeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Days retorna o tamanho da janela em dias inteiros.
func (w RangeWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}
