package repository

import (
	"little-lemon-api/models"

	"gorm.io/gorm"
)

// UserRepository reads identities and mutates role-group membership. Users
// themselves are created by the auth front door and read-only to the core
// services; only membership changes here.
type UserRepository interface {
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	Create(u *models.User) error
	InGroup(groupName string) ([]models.User, error)
	GroupNames(userID uint) ([]string, error)
	AddToGroup(userID uint, groupName string) error
	RemoveFromGroup(userID uint, groupName string) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) ByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) InGroup(groupName string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_role_groups urg ON urg.user_id = users.id").
		Joins("JOIN role_groups g ON g.id = urg.role_group_id").
		Where("g.name = ?", groupName).
		Find(&users).Error
	return users, err
}

func (r *userRepository) GroupNames(userID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&models.RoleGroup{}).
		Joins("JOIN user_role_groups urg ON urg.role_group_id = role_groups.id").
		Where("urg.user_id = ?", userID).
		Pluck("role_groups.name", &names).Error
	return names, err
}

// AddToGroup is idempotent: appending an existing membership is a no-op.
func (r *userRepository) AddToGroup(userID uint, groupName string) error {
	group, err := r.group(groupName)
	if err != nil {
		return err
	}
	user := models.User{ID: userID}
	return r.db.Model(&user).Association("Groups").Append(group)
}

// RemoveFromGroup is idempotent for users not currently in the group.
func (r *userRepository) RemoveFromGroup(userID uint, groupName string) error {
	group, err := r.group(groupName)
	if err != nil {
		return err
	}
	user := models.User{ID: userID}
	return r.db.Model(&user).Association("Groups").Delete(group)
}

func (r *userRepository) group(name string) (*models.RoleGroup, error) {
	var g models.RoleGroup
	if err := r.db.Where("name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}
