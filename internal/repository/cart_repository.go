package repository

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Replace stages items into the user's cart, creating the cart lazily and
// deleting whatever was staged before. The whole swap is one transaction so a
// cart never holds a mix of old and new items.
func (r *CartRepository) Replace(userID uint, items []models.CartItem) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{UserID: userID}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].CartID = cart.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		cart.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetForUser loads the cart with its items, scoped to the owning user.
func (r *CartRepository) GetForUser(cartID uint, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").Where("id = ? AND user_id = ?", cartID, userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
