package store

import (
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
)

// UserStore persists and looks up users.
type UserStore struct {
	db *gorm.DB
}

// Create inserts a new user. A uniqueness race past the pre-checks surfaces
// as gorm.ErrDuplicatedKey.
func (s *UserStore) Create(u *models.User) error {
	return s.db.Create(u).Error
}

// FindByID loads a user by primary key.
func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername loads a user by exact username.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UsernameExists reports whether any user already has this username.
func (s *UserStore) UsernameExists(username string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// EmailExists reports whether any user already registered this email.
func (s *UserStore) EmailExists(email string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
