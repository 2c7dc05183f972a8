package middleware

import "context"

// ContextKey is a private key type so request-scoped values cannot
// collide with other packages.
type ContextKey string

const UserIDCtxKey = ContextKey("user_id")

// UserIDFromContext returns the authenticated user id placed into the
// context by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}
