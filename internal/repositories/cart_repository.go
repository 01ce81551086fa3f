package repositories

import (
	"context"
	"errors"
	"fmt"

	"khazina/internal/models"

	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error)
	AddItem(ctx context.Context, item *models.CartItem) error
	IncrementQuantity(ctx context.Context, cartID uint, productID string, by int) (bool, error)
	SetQuantity(ctx context.Context, cartID uint, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID uint, productID string) error
	Clear(ctx context.Context, cartID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// IncrementQuantity bumps an existing line's quantity; returns false when no
// such line exists (caller inserts a new one).
func (r *cartRepository) IncrementQuantity(ctx context.Context, cartID uint, productID string, by int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND is_gold_investment = ?", cartID, productID, false).
		Update("quantity", gorm.Expr("quantity + ?", by))
	if res.Error != nil {
		return false, fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, cartID uint, productID string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND is_gold_investment = ?", cartID, productID, false).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to set cart item quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID uint, productID string) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
