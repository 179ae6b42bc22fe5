package status_test

import (
	"testing"
	"time"

	"github.com/byteforge/aegis-frontend/status"
	"github.com/stretchr/testify/require"
)

func TestNextAllowsDocumentedTransitions(t *testing.T) {
	cases := []struct {
		from, to status.State
	}{
		{status.Idle, status.Loading},
		{status.Loading, status.Success},
		{status.Loading, status.Error},
		{status.Loading, status.PasswordRequired},
		{status.PasswordRequired, status.Loading},
		{status.PasswordRequired, status.Error},
		{status.Error, status.Loading},
	}

	for _, c := range cases {
		got, err := c.from.Next(c.to)
		require.NoError(t, err, "%s -> %s", c.from, c.to)
		require.Equal(t, c.to, got)
	}
}

func TestNextRejectsInvalidTransitions(t *testing.T) {
	cases := []struct {
		from, to status.State
	}{
		{status.Idle, status.Success},
		{status.Idle, status.Error},
		{status.Success, status.Loading},
		{status.Success, status.Error},
		{status.Error, status.Success},
		{status.PasswordRequired, status.Success},
	}

	for _, c := range cases {
		got, err := c.from.Next(c.to)
		require.Error(t, err, "%s -> %s", c.from, c.to)
		require.Equal(t, c.from, got, "state must not move on a rejected transition")
	}
}

func TestSuccessIsTerminal(t *testing.T) {
	require.True(t, status.Success.Terminal())
	require.False(t, status.Error.Terminal())
	require.False(t, status.Loading.Terminal())
	require.False(t, status.Idle.Terminal())
}

func TestOnlyErrorIsRetryable(t *testing.T) {
	require.True(t, status.Error.Retryable())
	require.False(t, status.Success.Retryable())
	require.False(t, status.Loading.Retryable())
	require.False(t, status.Idle.Retryable())
}

func TestProjectionAdvance(t *testing.T) {
	p := status.Projection{State: status.Idle}

	require.NoError(t, p.Advance(status.Loading, ""))
	require.NoError(t, p.Advance(status.Error, "wrong password"))
	require.Equal(t, status.Error, p.State)
	require.Equal(t, "wrong password", p.Message)

	// Retry path re-enters Loading and can succeed.
	require.NoError(t, p.Advance(status.Loading, ""))
	require.NoError(t, p.Advance(status.Success, "signed in"))
	require.Equal(t, status.Success, p.State)
}

func TestProjectionAdvanceKeepsStateOnInvalidTransition(t *testing.T) {
	p := status.Projection{State: status.Success, Message: "done"}

	err := p.Advance(status.Loading, "again")
	require.Error(t, err)
	require.Equal(t, status.Success, p.State)
	require.Equal(t, "done", p.Message)
}

func TestRedirectTimingConstants(t *testing.T) {
	require.Equal(t, 500*time.Millisecond, status.LoginRedirectDelay)
	require.Equal(t, 5, status.VerifyCountdownSeconds)
}
