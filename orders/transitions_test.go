package orders

import (
	"strings"
	"testing"
	"time"

	"kirana/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func completeAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: "Ada Buyer",
		Address:  "1 Market St",
		City:     "Springfield",
		Country:  "US",
		Phone:    "555-0100",
	}
}

func TestPayFilterMatchesOnlyUnpaid(t *testing.T) {
	filter := PayFilter("o123")
	require.Equal(t, bson.M{"orderid": "o123", "is_paid": false}, filter)
}

func TestDeliverFilterPermissiveByDefault(t *testing.T) {
	filter := DeliverFilter("o123", false)
	require.Equal(t, bson.M{"orderid": "o123", "is_delivered": false}, filter)
	// delivery before payment stays allowed unless the policy flag is on
	require.NotContains(t, filter, "is_paid")
}

func TestDeliverFilterWithPaidPolicy(t *testing.T) {
	filter := DeliverFilter("o123", true)
	require.Equal(t, bson.M{"orderid": "o123", "is_delivered": false, "is_paid": true}, filter)
}

func TestValidateAddress(t *testing.T) {
	addr := completeAddress()
	require.NoError(t, validateAddress(addr))

	addr.Phone = ""
	err := validateAddress(addr)
	require.Error(t, err)
	require.Contains(t, err.Error(), "phone")

	addr = completeAddress()
	addr.FullName = ""
	require.Error(t, validateAddress(addr))
}

func TestInvoiceQRPayloadShape(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	payload := InvoiceQRPayload("o123", issued)

	parts := strings.Split(payload, "|")
	require.Len(t, parts, 3)
	require.Equal(t, "o123", parts[0])
	require.Equal(t, "1700000000", parts[1])
	require.NotEmpty(t, parts[2])

	// deterministic for the same order and timestamp
	require.Equal(t, payload, InvoiceQRPayload("o123", issued))
	// signature covers the order id
	require.NotEqual(t, payload, InvoiceQRPayload("o124", issued))
}
