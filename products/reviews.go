package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kirana/db"
	"kirana/middleware"
	"kirana/models"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AppendReviewUpdate is a pipeline update that appends the review and
// recomputes rating and num_reviews from the resulting list in the same
// document write. The derived fields can never drift from the review list,
// even when two first-time reviewers race.
func AppendReviewUpdate(review models.Review, now time.Time) bson.A {
	return bson.A{
		bson.M{"$set": bson.M{
			"reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
				bson.A{bson.M{"$literal": review}},
			}},
		}},
		bson.M{"$set": bson.M{
			"num_reviews": bson.M{"$size": "$reviews"},
			"rating":      bson.M{"$round": bson.A{bson.M{"$avg": "$reviews.rating"}, 2}},
			"updated_at":  now,
		}},
	}
}

// AddReview appends a review and refreshes the product's rating aggregates.
// The duplicate check keys on the reviewer's account id, and the append is
// conditional on that same filter so two concurrent submissions from one
// account cannot both land.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	productID := ps.ByName("id")

	var input struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Rating < 1 || input.Rating > 5 || input.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	now := time.Now()
	review := models.Review{
		UserID:    userID,
		Name:      middleware.GetUserName(r.Context()),
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
	}

	var updated models.Product
	err := db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": productID, "reviews.userid": bson.M{"$ne": userID}},
		AppendReviewUpdate(review, now),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		// either the product is missing or this account already reviewed it
		exists, countErr := db.ProductCollection.CountDocuments(ctx, bson.M{"productid": productID})
		if countErr == nil && exists == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
			return
		}
		utils.RespondWithError(w, http.StatusConflict, "You already submitted a review")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert review")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":    "Review Created Successfully",
		"review":     review,
		"numReviews": updated.NumReviews,
		"rating":     updated.Rating,
	})
}
