package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/medirate/medirate/internal/platform/auth"
)

// User is an account in the directory. PasswordHash never leaves the service
// layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RolePermissions is the static capability matrix per role. Roles are fixed;
// there is no per-resource permission model.
var RolePermissions = map[string][]string{
	auth.RoleUser: {
		"profile:read", "profile:update",
		"appointments:book", "appointments:read:own", "appointments:cancel:own",
		"reviews:create",
		"directory:read",
	},
	auth.RoleHospitalAdmin: {
		"profile:read", "profile:update",
		"appointments:read:hospital", "appointments:update:hospital",
		"directory:read", "hospitals:manage", "doctors:manage",
	},
	auth.RoleAdmin: {
		"profile:read", "profile:update",
		"appointments:read:all", "appointments:update:all",
		"directory:read", "hospitals:manage", "hospitals:delete",
		"doctors:manage", "doctors:delete",
		"users:list", "users:update-role", "users:delete",
	},
}
