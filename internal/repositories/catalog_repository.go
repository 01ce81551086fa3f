package repositories

import (
	"context"
	"errors"
	"fmt"

	"khazina/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository interface {
	List(ctx context.Context, productType, category string) ([]models.Product, error)
	GetByProductID(ctx context.Context, productID string) (*models.Product, error)
	Count(ctx context.Context) (int64, error)
	BulkCreate(ctx context.Context, products []models.Product) error
	// DecrementStock reduces stock only when enough remains; returns
	// ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, productID string, quantity int) error
	// IncrementStock puts reserved stock back after a failed checkout.
	IncrementStock(ctx context.Context, productID string, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, productType, category string) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if productType != "" {
		q = q.Where("type = ?", productType)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var products []models.Product
	if err := q.Limit(100).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByProductID(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) BulkCreate(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	res := r.db.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock - ? WHERE product_id = ? AND stock >= ?",
		quantity, productID, quantity,
	)
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) IncrementStock(ctx context.Context, productID string, quantity int) error {
	res := r.db.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock + ? WHERE product_id = ?",
		quantity, productID,
	)
	if res.Error != nil {
		return fmt.Errorf("failed to restore stock: %w", res.Error)
	}
	return nil
}

type MerchantRepository interface {
	ListActive(ctx context.Context) ([]models.Merchant, error)
	Count(ctx context.Context) (int64, error)
	BulkCreate(ctx context.Context, merchants []models.Merchant) error
}

type DesignerRepository interface {
	ListActive(ctx context.Context) ([]models.Designer, error)
	Count(ctx context.Context) (int64, error)
	BulkCreate(ctx context.Context, designers []models.Designer) error
}

type merchantRepository struct{ db *gorm.DB }

func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) ListActive(ctx context.Context) ([]models.Merchant, error) {
	var merchants []models.Merchant
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&merchants).Error; err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	return merchants, nil
}

func (r *merchantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Merchant{}).Count(&count).Error
	return count, err
}

func (r *merchantRepository) BulkCreate(ctx context.Context, merchants []models.Merchant) error {
	if len(merchants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&merchants).Error
}

type designerRepository struct{ db *gorm.DB }

func NewDesignerRepository(db *gorm.DB) DesignerRepository {
	return &designerRepository{db: db}
}

func (r *designerRepository) ListActive(ctx context.Context) ([]models.Designer, error) {
	var designers []models.Designer
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&designers).Error; err != nil {
		return nil, fmt.Errorf("failed to list designers: %w", err)
	}
	return designers, nil
}

func (r *designerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Designer{}).Count(&count).Error
	return count, err
}

func (r *designerRepository) BulkCreate(ctx context.Context, designers []models.Designer) error {
	if len(designers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&designers).Error
}
