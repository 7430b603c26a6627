package resources

import (
	"testing"

	"github.com/stretchr/testify/require"

	"eventtimer/internal/core/countdown"
)

func TestIconIsCached(t *testing.T) {
	first, err := Icon("idle.svg")
	require.NoError(t, err)
	second, err := Icon("idle.svg")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Contains(t, string(first.Content()), "<svg")
}

func TestIconMissing(t *testing.T) {
	_, err := Icon("missing.svg")
	require.Error(t, err)
	require.Panics(t, func() { MustIcon("missing.svg") })
}

func TestStateIcon(t *testing.T) {
	require.Equal(t, "icons/idle.svg", StateIcon(countdown.StateIdle).Name())
	require.Equal(t, "icons/running.svg", StateIcon(countdown.StateRunning).Name())
	require.Equal(t, "icons/ended.svg", StateIcon(countdown.StateEnded).Name())
}
