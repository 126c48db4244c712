package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"kirana/db"
	"kirana/models"
	"kirana/mq"
	"kirana/payment"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoReturnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// deliverRequiresPaid is a policy switch, not an implicit rule: the original
// storefront allowed delivery confirmation on unpaid orders.
func deliverRequiresPaid() bool {
	return os.Getenv("ORDERS_REQUIRE_PAID") == "true"
}

// PayFilter matches an order that can still transition to paid.
func PayFilter(orderID string) bson.M {
	return bson.M{"orderid": orderID, "is_paid": false}
}

// DeliverFilter matches an order that can still transition to delivered.
func DeliverFilter(orderID string, requirePaid bool) bson.M {
	filter := bson.M{"orderid": orderID, "is_delivered": false}
	if requirePaid {
		filter["is_paid"] = true
	}
	return filter
}

// PayOrder marks an order paid. The paid flag flips in a single conditional
// update so two concurrent confirmations cannot both succeed, and only after
// the payment provider accepts the reference.
func PayOrder(provider payment.Provider) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		orderID := ps.ByName("id")

		order, status, msg := fetchOrderFor(ctx, orderID, r)
		if status != http.StatusOK {
			utils.RespondWithError(w, status, msg)
			return
		}

		var input struct {
			PaymentRef string `json:"paymentRef"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.PaymentRef == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Payment reference is required")
			return
		}

		if err := provider.Verify(orderID, input.PaymentRef); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Payment could not be verified")
			return
		}

		now := time.Now()
		var updated models.Order
		err := db.OrderCollection.FindOneAndUpdate(ctx,
			PayFilter(orderID),
			bson.M{"$set": bson.M{"is_paid": true, "paid_at": now, "payment_ref": input.PaymentRef}},
			mongoReturnAfter(),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusConflict, "Order is already paid")
			return
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error updating payment status")
			return
		}

		m := models.Index{EntityType: "order", EntityId: orderID, ItemId: order.UserID, ItemType: "user"}
		go mq.Emit(ctx, "order-paid", m)

		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"message": "Order Paid", "order": updated})
	}
}

// DeliverOrder marks an order delivered. Admin only; same one-shot
// conditional update as PayOrder.
func DeliverOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	requirePaid := deliverRequiresPaid()

	now := time.Now()
	var updated models.Order
	err := db.OrderCollection.FindOneAndUpdate(ctx,
		DeliverFilter(orderID, requirePaid),
		bson.M{"$set": bson.M{"is_delivered": true, "delivered_at": now}},
		mongoReturnAfter(),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		var order models.Order
		if findErr := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); findErr != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
			return
		}
		if order.IsDelivered {
			utils.RespondWithError(w, http.StatusConflict, "Order is already delivered")
			return
		}
		utils.RespondWithError(w, http.StatusConflict, "Order is not paid yet")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating delivery status")
		return
	}

	m := models.Index{EntityType: "order", EntityId: orderID, ItemId: updated.UserID, ItemType: "user"}
	go mq.Emit(ctx, "order-delivered", m)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"message": "Order Delivered", "order": updated})
}

// CreatePaymentSession hands the client a session for the payment widget.
func CreatePaymentSession(provider payment.Provider) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		order, status, msg := fetchOrderFor(ctx, ps.ByName("id"), r)
		if status != http.StatusOK {
			utils.RespondWithError(w, status, msg)
			return
		}
		if order.IsPaid {
			utils.RespondWithError(w, http.StatusConflict, "Order is already paid")
			return
		}

		session, err := provider.CreateSession(order.OrderID, order.TotalPrice)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadGateway, "Failed to create payment session")
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, session)
	}
}
