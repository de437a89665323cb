package services

import (
	"little-lemon-api/models"
	"little-lemon-api/repository"
)

// RoleResolver answers role-membership questions against the store. There is
// no caching: every check is a fresh lookup, so roster changes take effect
// on the next request without reissuing tokens.
type RoleResolver struct {
	users repository.UserRepository
}

func NewRoleResolver(users repository.UserRepository) *RoleResolver {
	return &RoleResolver{users: users}
}

// HasRole reports whether the user is in the role's group. Every
// authenticated user has RoleCustomer.
func (r *RoleResolver) HasRole(userID uint, role models.Role) (bool, error) {
	if role == models.RoleCustomer {
		return true, nil
	}
	group, ok := models.GroupForRole(role)
	if !ok {
		return false, nil
	}
	names, err := r.users.GroupNames(userID)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == group {
			return true, nil
		}
	}
	return false, nil
}

// EffectiveRole collapses a user's memberships to the single role used for
// visibility scoping. Manager outranks Delivery crew; no membership means
// plain customer.
func (r *RoleResolver) EffectiveRole(userID uint) (models.Role, error) {
	names, err := r.users.GroupNames(userID)
	if err != nil {
		return "", err
	}
	role := models.RoleCustomer
	for _, name := range names {
		switch mapped, ok := models.RoleForGroup(name); {
		case !ok:
			// unknown group, grants nothing
		case mapped == models.RoleManager:
			return models.RoleManager, nil
		case mapped == models.RoleDeliveryCrew:
			role = models.RoleDeliveryCrew
		}
	}
	return role, nil
}
