package services

import (
	"little-lemon-api/models"
	"little-lemon-api/repository"
)

// RosterService manages membership in the Manager and Delivery crew groups.
// The route gate restricts every roster operation to managers; the service
// itself only cares about existence and membership.
type RosterService struct {
	users repository.UserRepository
}

func NewRosterService(users repository.UserRepository) *RosterService {
	return &RosterService{users: users}
}

func (s *RosterService) List(role models.Role) ([]models.User, error) {
	group, ok := models.GroupForRole(role)
	if !ok {
		return nil, ErrNotFound
	}
	return s.users.InGroup(group)
}

// Add puts the named user in the role's group. Adding twice is a no-op.
func (s *RosterService) Add(role models.Role, username string) (*models.User, error) {
	group, ok := models.GroupForRole(role)
	if !ok {
		return nil, ErrNotFound
	}
	user, err := s.users.ByUsername(username)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.users.AddToGroup(user.ID, group); err != nil {
		return nil, err
	}
	return user, nil
}

// Remove takes the user out of the role's group. Removing a non-member is a
// no-op; an unknown user id is NotFound.
func (s *RosterService) Remove(role models.Role, userID uint) (*models.User, error) {
	group, ok := models.GroupForRole(role)
	if !ok {
		return nil, ErrNotFound
	}
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.users.RemoveFromGroup(user.ID, group); err != nil {
		return nil, err
	}
	return user, nil
}
