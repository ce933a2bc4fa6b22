package globals

import (
	"context"

	"sparkle/config"
)

var JwtSecret = []byte(config.App.JWTSecret)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
