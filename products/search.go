package products

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kirana/db"
	"kirana/models"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPageSize = 3

// BuildSearchFilter turns the facet params into a Mongo filter. Empty values
// and the "all" sentinel mean no filter for that facet.
func BuildSearchFilter(query, category, price string) bson.M {
	filter := bson.M{}

	if query != "" && query != "all" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: query, Options: "i"}}
	}
	if category != "" && category != "all" {
		filter["category"] = category
	}
	if price != "" && price != "all" {
		parts := strings.SplitN(price, "-", 2)
		if len(parts) == 2 {
			min, errMin := strconv.ParseFloat(parts[0], 64)
			max, errMax := strconv.ParseFloat(parts[1], 64)
			if errMin == nil && errMax == nil {
				filter["price"] = bson.M{"$gte": min, "$lte": max}
			}
		}
	}
	return filter
}

// SortOrder maps a sort key to a Mongo sort document. Unknown keys fall back
// to reverse insertion order.
func SortOrder(key string) bson.D {
	switch key {
	case "featured":
		return bson.D{{Key: "featured", Value: -1}}
	case "lowest":
		return bson.D{{Key: "price", Value: 1}}
	case "highest":
		return bson.D{{Key: "price", Value: -1}}
	case "toprated":
		return bson.D{{Key: "rating", Value: -1}}
	case "newest":
		return bson.D{{Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "_id", Value: -1}}
	}
}

// Pages is ceil(count / pageSize).
func Pages(count int64, pageSize int) int64 {
	if pageSize < 1 {
		return 0
	}
	return (count + int64(pageSize) - 1) / int64(pageSize)
}

// Search runs the filtered, sorted, paginated catalog query.
func Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := BuildSearchFilter(q.Get("query"), q.Get("category"), q.Get("price"))
	sort := SortOrder(q.Get("order"))
	page, pageSize := utils.ParsePageParams(r, defaultPageSize, 100)

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))

	cursor, err := db.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Product
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading search results")
		return
	}
	if results == nil {
		results = []models.Product{}
	}

	count, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"products":      results,
		"countProducts": count,
		"page":          page,
		"pages":         Pages(count, pageSize),
	})
}
