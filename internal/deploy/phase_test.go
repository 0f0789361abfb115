package deploy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_Advance(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newPhase(PhaseOrder[0])

	prev, changed := p.advance(StatusInProgress, t0)
	assert.True(t, changed)
	assert.Equal(t, StatusPending, prev)
	assert.Equal(t, t0, p.StartedAt())

	_, changed = p.advance(StatusInProgress, t0.Add(time.Second))
	assert.False(t, changed, "same status is not a transition")

	_, changed = p.advance(StatusComplete, t0.Add(time.Minute))
	assert.True(t, changed)
	assert.Equal(t, t0, p.StartedAt(), "start time is kept")
	assert.Equal(t, t0.Add(time.Minute), p.CompletedAt())

	for _, s := range []Status{StatusPending, StatusInProgress} {
		prev, changed := p.advance(s, t0.Add(time.Hour))
		assert.False(t, changed)
		assert.Equal(t, StatusComplete, prev)
		assert.True(t, p.Complete())
	}
	assert.Equal(t, t0.Add(time.Minute), p.CompletedAt())
}

func TestPhase_CompleteWithoutProgressSetsBothTimes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newPhase(PhaseOrder[3])
	p.advance(StatusComplete, now)

	assert.Equal(t, now, p.StartedAt())
	assert.Equal(t, now, p.CompletedAt())
}

func TestPhaseSet_Active(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ps := newPhaseSet()
	assert.Equal(t, 0, ps.active(), "first pending phase")

	ps.get(PhaseNetwork).advance(StatusComplete, now)
	ps.get(PhaseSecurity).advance(StatusComplete, now)
	assert.Equal(t, 2, ps.active())

	ps.get(PhaseConsumerWorkgroups).advance(StatusInProgress, now)
	assert.Equal(t, 5, ps.active(), "in-progress wins over earlier pending")

	for _, p := range ps.list {
		p.advance(StatusComplete, now)
	}
	assert.Equal(t, len(PhaseOrder)-1, ps.active(), "terminal phase when all complete")
	assert.Equal(t, len(PhaseOrder), ps.completed())
}

func TestStatus_Text(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusPending, StatusInProgress, StatusComplete} {
		b, err := s.MarshalText()
		require.NoError(t, err)

		var got Status
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("done")))
	assert.Equal(t, "in_progress", StatusInProgress.String())
}
