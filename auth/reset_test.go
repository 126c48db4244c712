package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestResetFilterRequiresMatchingTokenAndLiveExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	filter := ResetFilter("buyer@example.com", "1a2b3c", now)

	require.Equal(t, bson.M{
		"email":        "buyer@example.com",
		"reset_token":  "1a2b3c",
		"reset_expiry": bson.M{"$gt": now},
	}, filter)
}

func TestResetUpdateConsumesToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	update := ResetUpdate("$2a$10$hash", now)

	set := update["$set"].(bson.M)
	require.Equal(t, "$2a$10$hash", set["password_hash"])
	require.Equal(t, now, set["updated_at"])

	// both token fields go away in the same write, so the OTP cannot be replayed
	unset := update["$unset"].(bson.M)
	require.Contains(t, unset, "reset_token")
	require.Contains(t, unset, "reset_expiry")
}
