package repository

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// HasHobby reports whether the hobby is in the user's declared interest set.
func (r *UserRepository) HasHobby(userID uint, hobbyID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_hobbies").
		Where("user_id = ? AND hobby_id = ?", userID, hobbyID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetHobby(hobbyID uint) (*models.Hobby, error) {
	var hobby models.Hobby
	err := r.db.First(&hobby, hobbyID).Error
	if err != nil {
		return nil, err
	}
	return &hobby, nil
}

// GetActivePayPalAccount returns the user's connected merchant account, or
// (nil, nil) when none is active.
func (r *UserRepository) GetActivePayPalAccount(userID uint) (*models.PayPalAccount, error) {
	var account models.PayPalAccount
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
