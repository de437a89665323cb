package models

import (
	"time"
)

// Role is the closed set of authorization levels in the system. A user with
// no role-group membership is a plain customer.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
)

// Canonical role-group names as stored in the database. These two strings
// are the only group names the API recognizes.
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
)

// RoleForGroup maps a stored group name to its role. Membership in a group
// this API does not know about grants no role.
func RoleForGroup(name string) (Role, bool) {
	switch name {
	case GroupManager:
		return RoleManager, true
	case GroupDeliveryCrew:
		return RoleDeliveryCrew, true
	}
	return "", false
}

// GroupForRole is the inverse mapping. RoleCustomer has no group: being a
// customer is the absence of membership.
func GroupForRole(r Role) (string, bool) {
	switch r {
	case RoleManager:
		return GroupManager, true
	case RoleDeliveryCrew:
		return GroupDeliveryCrew, true
	}
	return "", false
}

// RoleGroup is a named set of users sharing an authorization level.
// Membership is mutated only through the staff roster endpoints.
type RoleGroup struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Users []User `json:"-" gorm:"many2many:user_role_groups"`
}

type User struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Username     string      `json:"username" gorm:"uniqueIndex;not null"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-" gorm:"not null"`
	Groups       []RoleGroup `json:"-" gorm:"many2many:user_role_groups"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
