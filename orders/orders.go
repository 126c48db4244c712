package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kirana/db"
	"kirana/middleware"
	"kirana/models"
	"kirana/mq"
	"kirana/pricing"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateOrder persists a checkout. The price breakdown is recomputed here
// from the catalog; client-sent totals are ignored. Each line decrements
// product stock atomically, so the last unit cannot be sold twice.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Items           []models.OrderItem     `json:"items"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order items are required")
		return
	}
	if input.PaymentMethod == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment method is required")
		return
	}
	if err := validateAddress(input.ShippingAddress); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid order items")
			return
		}
	}

	// Snapshot each line from the live catalog and reserve stock. A line
	// that cannot be reserved rolls back everything reserved before it.
	items := make([]models.OrderItem, 0, len(input.Items))
	lines := make([]pricing.Line, 0, len(input.Items))

	for _, item := range input.Items {
		var product models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": item.ProductID}).Decode(&product); err != nil {
			releaseStock(ctx, items)
			utils.RespondWithError(w, http.StatusNotFound, "Product Not Found: "+item.ProductID)
			return
		}

		res, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.ProductID, "count_in_stock": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"count_in_stock": -item.Quantity}},
		)
		if err != nil || res.ModifiedCount == 0 {
			releaseStock(ctx, items)
			utils.RespondWithError(w, http.StatusConflict, "Insufficient stock for "+product.Name)
			return
		}

		items = append(items, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		lines = append(lines, pricing.Line{Price: product.Price, Quantity: item.Quantity})
	}

	totals := pricing.Compute(lines)

	order := models.Order{
		OrderID:         "o" + utils.GenerateRandomString(12),
		UserID:          userID,
		BuyerName:       middleware.GetUserName(r.Context()),
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		ShippingPrice:   totals.ShippingPrice,
		TaxPrice:        totals.TaxPrice,
		TotalPrice:      totals.TotalPrice,
		IsPaid:          false,
		IsDelivered:     false,
		CreatedAt:       time.Now(),
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		releaseStock(ctx, items)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	m := models.Index{EntityType: "order", EntityId: order.OrderID, ItemId: userID, ItemType: "user"}
	go mq.Emit(ctx, "order-created", m)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"message": "New Order Created", "order": order})
}

func releaseStock(ctx context.Context, reserved []models.OrderItem) {
	for _, item := range reserved {
		_, _ = db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.ProductID},
			bson.M{"$inc": bson.M{"count_in_stock": item.Quantity}},
		)
	}
}

func validateAddress(a models.ShippingAddress) error {
	switch {
	case a.FullName == "":
		return errMissing("fullName")
	case a.Address == "":
		return errMissing("address")
	case a.City == "":
		return errMissing("city")
	case a.Country == "":
		return errMissing("country")
	case a.Phone == "":
		return errMissing("phone")
	}
	return nil
}

type errMissing string

func (e errMissing) Error() string { return "Shipping address field required: " + string(e) }

// GetMyOrders lists the caller's own orders.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r.Context())

	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching your orders")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Order
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if results == nil {
		results = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// ListOrders returns every order for the back office. Admin only.
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Order
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if results == nil {
		results = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetOrder returns one order to its buyer or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, status, msg := fetchOrderFor(ctx, ps.ByName("id"), r)
	if status != http.StatusOK {
		utils.RespondWithError(w, status, msg)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// fetchOrderFor loads an order and enforces owner-or-admin access.
func fetchOrderFor(ctx context.Context, orderID string, r *http.Request) (models.Order, int, string) {
	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		return order, http.StatusNotFound, "Order Not Found"
	}
	if order.UserID != middleware.GetUserID(r.Context()) && !middleware.IsAdmin(r.Context()) {
		return order, http.StatusForbidden, "Forbidden"
	}
	return order, http.StatusOK, ""
}

// DeleteOrder removes an order. Admin only.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.OrderCollection.DeleteOne(ctx, bson.M{"orderid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting order")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Order Deleted"})
}
