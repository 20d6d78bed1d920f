package aggregating

import (
	"sync"

	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

// snapshotBoard coordena atualizações concorrentes do dashboard com um
// contador de geração: cada refresh retira uma sequência antes de buscar os
// dados e só o resultado da sequência mais nova é comprometido. Uma resposta
// atrasada de um refresh antigo nunca sobrescreve dados mais novos.
type snapshotBoard struct {
	mu           sync.Mutex
	seq          uint64
	committedSeq map[string]uint64
	snapshots    map[string]*domain.DashboardSnapshot
}

func newSnapshotBoard() *snapshotBoard {
	return &snapshotBoard{
		committedSeq: make(map[string]uint64),
		snapshots:    make(map[string]*domain.DashboardSnapshot),
	}
}

// nextSeq reserva a sequência de uma nova atualização. Deve ser chamada
// ANTES da busca dos dados, para que a ordem das sequências reflita a ordem
// de disparo das atualizações.
func (b *snapshotBoard) nextSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	return b.seq
}

// commit publica o snapshot se ele ainda for o mais novo para o range.
// Retorna false quando uma atualização mais recente já foi comprometida.
func (b *snapshotBoard) commit(snapshot *domain.DashboardSnapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if snapshot.Sequence <= b.committedSeq[snapshot.Range] {
		return false
	}

	b.committedSeq[snapshot.Range] = snapshot.Sequence
	b.snapshots[snapshot.Range] = snapshot

	return true
}

// get retorna o último snapshot comprometido para o range, ou nil.
func (b *snapshotBoard) get(rangeToken string) *domain.DashboardSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshots[rangeToken]
}
