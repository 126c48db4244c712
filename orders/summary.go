package orders

import (
	"context"
	"net/http"
	"time"

	"kirana/db"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Summary aggregates the dashboard counters: order and user counts, revenue
// over paid orders, product count. Admin only.
func Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	numOrders, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching summary")
		return
	}

	numUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching summary")
		return
	}

	numProducts, err := db.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching summary")
		return
	}

	pipeline := []bson.M{
		{"$match": bson.M{"is_paid": true}},
		{"$group": bson.M{"_id": nil, "totalSales": bson.M{"$sum": "$total_price"}}},
	}
	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching summary")
		return
	}
	defer cursor.Close(ctx)

	var sales []struct {
		TotalSales float64 `bson:"totalSales"`
	}
	if err := cursor.All(ctx, &sales); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading summary")
		return
	}

	var totalSales float64
	if len(sales) > 0 {
		totalSales = sales[0].TotalSales
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"orders":     numOrders,
		"users":      numUsers,
		"products":   numProducts,
		"totalSales": totalSales,
	})
}
