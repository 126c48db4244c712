package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageHeaders(t *testing.T) {
	msg := Message("shop@example.com", "buyer@example.com", "Password Reset", "code 1a2b3c")

	require.True(t, strings.HasPrefix(msg, "From: shop@example.com\r\n"))
	require.Contains(t, msg, "To: buyer@example.com\r\n")
	require.Contains(t, msg, "Subject: Password Reset\r\n")
	require.True(t, strings.HasSuffix(msg, "code 1a2b3c\r\n"))
}

func TestSendRequiresConfig(t *testing.T) {
	m := &Mailer{}
	require.False(t, m.Configured())
	require.Error(t, m.Send("buyer@example.com", "x", "y"))
}

func TestResetTokenBody(t *testing.T) {
	body := ResetTokenBody("1a2b3c")
	require.Contains(t, body, "1a2b3c")
	require.Contains(t, body, "10 minutes")
}
