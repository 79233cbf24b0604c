package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// MemberIDKey is the context key for the acting member's id.
const MemberIDKey ContextKey = "member_id"

// DevMemberMiddleware injects the acting member id into the request context.
// Real authentication and sessions are owned by the surrounding platform;
// this server only needs an identity on the context. In development the
// identity comes from the X-Member-ID header, defaulting to member 1.
func DevMemberMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		memberID := int64(1)
		if header := r.Header.Get("X-Member-ID"); header != "" {
			if id, err := strconv.ParseInt(header, 10, 64); err == nil && id > 0 {
				memberID = id
			}
		}

		ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetMemberID extracts the acting member id from the request context.
func GetMemberID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(MemberIDKey).(int64)
	return id, ok
}
