package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Session is handed to the client-side payment widget.
type Session struct {
	URL     string  `json:"paymentUrl"`
	Ref     string  `json:"ref"`
	OrderID string  `json:"orderid"`
	Amount  float64 `json:"amount"`
}

// Provider creates payment sessions and verifies completed payments. The
// /pay transition only flips the paid flag once Verify accepts the
// reference, instead of trusting the client's success callback.
type Provider interface {
	CreateSession(orderID string, amount float64) (Session, error)
	Verify(orderID, ref string) error
}

// LocalProvider fakes the gateway for development: sessions point back at
// the storefront, and refs are an HMAC of the order id so a ref only ever
// verifies against the order it was issued for.
type LocalProvider struct {
	BaseURL string
	Secret  []byte
}

func NewLocalProvider() *LocalProvider {
	base := os.Getenv("CHECKOUT_BASE_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	return &LocalProvider{
		BaseURL: base,
		Secret:  []byte(os.Getenv("CHECKOUT_SECRET")),
	}
}

func (p *LocalProvider) secret() []byte {
	if len(p.Secret) > 0 {
		return p.Secret
	}
	return []byte("dev-only-checkout-secret")
}

func (p *LocalProvider) refFor(orderID string) string {
	h := hmac.New(sha256.New, p.secret())
	h.Write([]byte(orderID))
	return "loc_" + hex.EncodeToString(h.Sum(nil))[:20]
}

func (p *LocalProvider) CreateSession(orderID string, amount float64) (Session, error) {
	return Session{
		URL:     p.BaseURL + "/order/" + orderID,
		Ref:     p.refFor(orderID),
		OrderID: orderID,
		Amount:  amount,
	}, nil
}

func (p *LocalProvider) Verify(orderID, ref string) error {
	if !hmac.Equal([]byte(ref), []byte(p.refFor(orderID))) {
		return fmt.Errorf("payment ref %q does not match order %s", ref, orderID)
	}
	return nil
}
