package aggregating

import (
	"time"

	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

// DefaultRangeToken é a janela aplicada quando o token informado não é
// reconhecido. O fallback silencioso reproduz o comportamento consolidado do
// dashboard; clientes dependem dele.
const DefaultRangeToken = "7d"

// rangeDays mapeia os tokens de range aceitos para o tamanho da janela em
// dias. "1y" é fixado em 365 dias, sem ajuste de ano bissexto.
var rangeDays = map[string]int{
	"7d":  7,
	"14d": 14,
	"30d": 30,
	"90d": 90,
	"1y":  365,
}

// ResolveWindow converte um token de range na janela concreta [start, end).
// End é a meia-noite do dia de now no fuso de now, então o dia corrente
// (incompleto) fica sempre fora da janela. Função pura de now; nunca falha.
func ResolveWindow(rangeToken string, now time.Time) domain.RangeWindow {
	days, ok := rangeDays[rangeToken]
	if !ok {
		days = rangeDays[DefaultRangeToken]
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return domain.RangeWindow{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// NormalizeRangeToken retorna o token efetivamente aplicado, trocando valores
// não reconhecidos pelo default.
func NormalizeRangeToken(rangeToken string) string {
	if _, ok := rangeDays[rangeToken]; !ok {
		return DefaultRangeToken
	}
	return rangeToken
}

// FilterByWindow seleciona os registros cujo timestamp cai na janela
// semiaberta. Registros com timestamp zero (origem não parseável) são
// descartados em silêncio. Preserva a ordem de entrada e não muta o slice
// original; filtrar um conjunto já filtrado pela mesma janela é idempotente.
func FilterByWindow(records []*domain.PerformanceRecord, window domain.RangeWindow) []*domain.PerformanceRecord {
	filtered := make([]*domain.PerformanceRecord, 0, len(records))

	for _, record := range records {
		if record == nil || record.OccurredAt.IsZero() {
			continue
		}

		if window.Contains(record.OccurredAt) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
