package connectivity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizlzm/cashier-offline/pkg/logger"
)

func TestTransitionFiresOncePerActualChange(t *testing.T) {
	m := NewMonitor(true, logger.NewNop())

	var events []bool
	m.OnChange(func(online bool) { events = append(events, online) })

	m.SetOnline(true) // no-op, already online
	m.SetOnline(false)
	m.SetOnline(false) // no-op repeat
	m.SetOnline(true)

	assert.Equal(t, []bool{false, true}, events)
	assert.True(t, m.IsOnline())
}

func TestComingOnlineTriggersExactlyOneDrain(t *testing.T) {
	m := NewMonitor(false, logger.NewNop())

	triggered := make(chan struct{}, 4)
	m.SetTrigger(func() { triggered <- struct{}{} })

	m.SetOnline(true)

	select {
	case <-triggered:
	case <-time.After(time.Second):
		t.Fatal("trigger never fired")
	}

	// Repeated online signals and going offline must not fire again.
	m.SetOnline(true)
	m.SetOnline(false)
	select {
	case <-triggered:
		t.Fatal("trigger fired without an offline-to-online transition")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTriggerAttachedAfterConstruction(t *testing.T) {
	m := NewMonitor(false, logger.NewNop())
	// No trigger installed: must not panic.
	require.NotPanics(t, func() { m.SetOnline(true) })
}
