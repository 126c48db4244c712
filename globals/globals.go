package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "dev-only-secret"
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UserNameKey ContextKey = "userName"
const IsAdminKey ContextKey = "isAdmin"

var Ctx = context.Background()
