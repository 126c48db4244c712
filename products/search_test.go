package products

import (
	"testing"
	"time"

	"kirana/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilterAllSentinels(t *testing.T) {
	filter := BuildSearchFilter("all", "all", "all")
	require.Empty(t, filter)

	filter = BuildSearchFilter("", "", "")
	require.Empty(t, filter)
}

func TestBuildSearchFilterFacets(t *testing.T) {
	filter := BuildSearchFilter("shirt", "clothing", "10-50")

	require.Contains(t, filter, "name")
	require.Equal(t, "clothing", filter["category"])
	require.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, filter["price"])
}

func TestBuildSearchFilterMalformedPriceIgnored(t *testing.T) {
	filter := BuildSearchFilter("", "", "cheap")
	require.NotContains(t, filter, "price")

	filter = BuildSearchFilter("", "", "10-abc")
	require.NotContains(t, filter, "price")
}

func TestSortOrder(t *testing.T) {
	require.Equal(t, bson.D{{Key: "price", Value: 1}}, SortOrder("lowest"))
	require.Equal(t, bson.D{{Key: "price", Value: -1}}, SortOrder("highest"))
	require.Equal(t, bson.D{{Key: "rating", Value: -1}}, SortOrder("toprated"))
	require.Equal(t, bson.D{{Key: "created_at", Value: -1}}, SortOrder("newest"))
	// unknown keys fall back to reverse insertion order
	require.Equal(t, bson.D{{Key: "_id", Value: -1}}, SortOrder("bogus"))
	require.Equal(t, bson.D{{Key: "_id", Value: -1}}, SortOrder("default"))
	require.Equal(t, bson.D{{Key: "_id", Value: -1}}, SortOrder(""))
}

func TestPages(t *testing.T) {
	require.Equal(t, int64(0), Pages(0, 3))
	require.Equal(t, int64(1), Pages(3, 3))
	require.Equal(t, int64(2), Pages(4, 3))
	require.Equal(t, int64(34), Pages(100, 3))
}

func TestAppendReviewUpdateRecomputesAggregatesInOneWrite(t *testing.T) {
	now := time.Now()
	review := models.Review{UserID: "u42", Name: "Ada", Rating: 4, Comment: "solid", CreatedAt: now}

	update := AppendReviewUpdate(review, now)

	// one pipeline, two stages: append, then derive — nothing happens in a
	// separate write that a concurrent reviewer could interleave with
	require.Len(t, update, 2)

	push := update[0].(bson.M)["$set"].(bson.M)
	concat := push["reviews"].(bson.M)["$concatArrays"].(bson.A)
	require.Len(t, concat, 2)
	appended := concat[1].(bson.A)
	require.Equal(t, bson.M{"$literal": review}, appended[0])

	derive := update[1].(bson.M)["$set"].(bson.M)
	require.Equal(t, bson.M{"$size": "$reviews"}, derive["num_reviews"])
	require.Equal(t,
		bson.M{"$round": bson.A{bson.M{"$avg": "$reviews.rating"}, 2}},
		derive["rating"])
	require.Equal(t, now, derive["updated_at"])
}
