package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles form a closed set. Checks are exact string matches with no
// hierarchy: an admin does not satisfy a surveyor-gated route.
const (
	RoleNone     = "none"
	RoleAdmin    = "admin"
	RoleSurveyor = "surveyor"
	RoleProUser  = "pro-user"
)

func ValidRole(role string) bool {
	switch role {
	case RoleNone, RoleAdmin, RoleSurveyor, RoleProUser:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
