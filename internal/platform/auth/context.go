package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "user_role"
)

// Identity is the authenticated requester attached to every protected request.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// WithIdentity returns a context carrying the requester's identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id.UserID)
	return context.WithValue(ctx, RoleKey, id.Role)
}

// IdentityFromContext retrieves the requester identity set by the bearer
// middleware. The zero Identity is returned on unauthenticated requests.
func IdentityFromContext(ctx context.Context) Identity {
	uid, _ := ctx.Value(UserIDKey).(uuid.UUID)
	role, _ := ctx.Value(RoleKey).(string)
	return Identity{UserID: uid, Role: role}
}

// UserIDFromContext retrieves the requester's user id from context.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	uid, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return uid
}

// RoleFromContext retrieves the requester's role from context.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}
