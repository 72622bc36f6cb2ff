package models

import (
	"strings"
	"time"
)

// Role represents staff roles in a workshop
type Role string

const (
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleAdvisor    Role = "service_advisor"
	RoleTechnician Role = "technician"
)

// User represents a member of workshop staff
type User struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	WorkshopID string    `bson:"workshop_id" json:"workshop_id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Role       Role      `bson:"role" json:"role"`
	IsActive   bool      `bson:"is_active" json:"is_active"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleOwner, RoleManager, RoleAdvisor, RoleTechnician:
		return true
	default:
		return false
	}
}

// IsTechnician reports whether the user works jobs on the floor.
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// DisplayName returns the user's name, or a placeholder derived from the id.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return PlaceholderTechnicianName(u.ID)
}

// PlaceholderTechnicianName names a technician known only by id:
// "Tech " followed by the first four characters of the id.
func PlaceholderTechnicianName(id string) string {
	if runes := []rune(id); len(runes) > 4 {
		id = string(runes[:4])
	}
	return "Tech " + id
}
