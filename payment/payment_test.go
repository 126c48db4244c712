package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalProviderSessionVerifies(t *testing.T) {
	p := &LocalProvider{BaseURL: "http://localhost:5173"}

	session, err := p.CreateSession("o123", 79.0)
	require.NoError(t, err)
	require.Equal(t, "o123", session.OrderID)
	require.Equal(t, 79.0, session.Amount)
	require.True(t, strings.HasPrefix(session.Ref, "loc_"))
	require.Equal(t, "http://localhost:5173/order/o123", session.URL)

	require.NoError(t, p.Verify("o123", session.Ref))
}

func TestLocalProviderRefIsBoundToOrder(t *testing.T) {
	p := &LocalProvider{BaseURL: "http://localhost:5173"}

	session, err := p.CreateSession("o123", 79.0)
	require.NoError(t, err)

	// a valid ref for one order must not verify against another
	require.Error(t, p.Verify("o999", session.Ref))

	other, err := p.CreateSession("o999", 12.0)
	require.NoError(t, err)
	require.NotEqual(t, session.Ref, other.Ref)
	require.NoError(t, p.Verify("o999", other.Ref))
}

func TestLocalProviderRejectsForeignRef(t *testing.T) {
	p := &LocalProvider{BaseURL: "http://localhost:5173"}

	require.Error(t, p.Verify("o123", "pi_stripe_like_ref"))
	require.Error(t, p.Verify("o123", ""))
	require.Error(t, p.Verify("o123", "loc_tooshort"))
}
