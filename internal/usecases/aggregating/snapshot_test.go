package aggregating

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

func TestSnapshotBoard_CommitOrder(t *testing.T) {
	board := newSnapshotBoard()

	// Duas atualizações concorrentes para o mesmo range: a primeira reserva a
	// sequência 1, a segunda a sequência 2
	seqOld := board.nextSeq()
	seqNew := board.nextSeq()

	newer := &domain.DashboardSnapshot{Range: "7d", Sequence: seqNew}
	older := &domain.DashboardSnapshot{Range: "7d", Sequence: seqOld}

	// A atualização mais nova termina primeiro
	assert.True(t, board.commit(newer))

	// A resposta atrasada da atualização antiga é descartada
	assert.False(t, board.commit(older))
	assert.Same(t, newer, board.get("7d"))
}

func TestSnapshotBoard_SequencesArePerBoard(t *testing.T) {
	board := newSnapshotBoard()

	seq7d := board.nextSeq()
	seq30d := board.nextSeq()

	assert.True(t, board.commit(&domain.DashboardSnapshot{Range: "7d", Sequence: seq7d}))
	assert.True(t, board.commit(&domain.DashboardSnapshot{Range: "30d", Sequence: seq30d}))

	// Ranges diferentes não interferem entre si
	assert.Equal(t, seq7d, board.get("7d").Sequence)
	assert.Equal(t, seq30d, board.get("30d").Sequence)
}

func TestSnapshotBoard_GetUnknownRange(t *testing.T) {
	board := newSnapshotBoard()

	assert.Nil(t, board.get("7d"))
}

func TestSnapshotBoard_ConcurrentRefreshes(t *testing.T) {
	board := newSnapshotBoard()

	const refreshes = 50

	var wg sync.WaitGroup
	for i := 0; i < refreshes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			seq := board.nextSeq()
			board.commit(&domain.DashboardSnapshot{Range: "7d", Sequence: seq})
		}()
	}
	wg.Wait()

	// Independente da ordem de término, o snapshot publicado é de uma das
	// sequências emitidas e nunca regride
	final := board.get("7d")
	assert.NotNil(t, final)
	assert.LessOrEqual(t, final.Sequence, uint64(refreshes))

	lateSeq := final.Sequence - 1
	if lateSeq > 0 {
		assert.False(t, board.commit(&domain.DashboardSnapshot{Range: "7d", Sequence: lateSeq}))
	}
}
