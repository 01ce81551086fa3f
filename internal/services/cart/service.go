// Package cart manages the shopping cart: catalog product lines plus custom
// gold-investment lines priced off the live karat rate when they are added.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/services/goldprice"
	"khazina/internal/utils"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidGrams    = errors.New("grams must be positive")
	ErrInvalidKarat    = errors.New("unsupported karat")
)

// View is a cart with product details resolved and the total computed.
type View struct {
	Items    []models.CartItem `json:"items"`
	TotalQAR float64           `json:"total_qar"`
}

type Service interface {
	Get(ctx context.Context, userID uint) (*View, error)
	AddProduct(ctx context.Context, userID uint, productID string, quantity int) error
	// AddGoldInvestment adds a custom gold line priced at the current rate
	// for the given karat.
	AddGoldInvestment(ctx context.Context, userID uint, karat int, grams float64) error
	// UpdateQuantity sets a line's quantity; zero or below removes the line.
	UpdateQuantity(ctx context.Context, userID uint, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID uint, productID string) error
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	pricing  goldprice.Service
}

func NewService(
	carts repositories.CartRepository,
	products repositories.ProductRepository,
	pricing goldprice.Service,
) Service {
	if carts == nil {
		panic("cart repository is required")
	}
	if products == nil {
		panic("product repository is required")
	}
	if pricing == nil {
		panic("pricing service is required")
	}
	return &service{carts: carts, products: products, pricing: pricing}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *service) Get(ctx context.Context, userID uint) (*View, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &View{Items: make([]models.CartItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		if item.IsGoldInvestment {
			view.TotalQAR += item.TotalPrice
			view.Items = append(view.Items, item)
			continue
		}

		product, err := s.products.GetByProductID(ctx, item.ProductID)
		if err != nil {
			// Product delisted since it was added; keep the line visible
			// without details.
			slog.Warn("cart references unknown product", "product_id", item.ProductID)
			view.Items = append(view.Items, item)
			continue
		}
		item.Product = product
		item.Title = product.Title
		item.ImageURL = product.ImageURL
		item.TotalPrice = round2(product.PriceQAR * float64(item.Quantity))
		view.TotalQAR += item.TotalPrice
		view.Items = append(view.Items, item)
	}
	view.TotalQAR = round2(view.TotalQAR)
	return view, nil
}

func (s *service) AddProduct(ctx context.Context, userID uint, productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := s.products.GetByProductID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	bumped, err := s.carts.IncrementQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		return err
	}
	if bumped {
		return nil
	}

	return s.carts.AddItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *service) AddGoldInvestment(ctx context.Context, userID uint, karat int, grams float64) error {
	if grams <= 0 {
		return ErrInvalidGrams
	}
	supported := false
	for _, k := range models.SupportedKarats {
		if k == karat {
			supported = true
			break
		}
	}
	if !supported {
		return ErrInvalidKarat
	}

	price, err := s.pricing.GetPriceByKarat(ctx, karat)
	if err != nil {
		return err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	total := round2(grams * price.PricePerGramQAR)
	return s.carts.AddItem(ctx, &models.CartItem{
		CartID:           cart.ID,
		ProductID:        utils.NewID("goldinv", 12),
		Quantity:         1,
		IsGoldInvestment: true,
		Karat:            karat,
		Grams:            grams,
		TotalPrice:       total,
		Title:            fmt.Sprintf("%dK Gold Investment (%.2fg)", karat, grams),
	})
}

func (s *service) UpdateQuantity(ctx context.Context, userID uint, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	err = s.carts.SetQuantity(ctx, cart.ID, productID, quantity)
	if errors.Is(err, repositories.ErrCartItemNotFound) {
		return ErrItemNotFound
	}
	return err
}

func (s *service) RemoveItem(ctx context.Context, userID uint, productID string) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	err = s.carts.RemoveItem(ctx, cart.ID, productID)
	if errors.Is(err, repositories.ErrCartItemNotFound) {
		return ErrItemNotFound
	}
	return err
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.Clear(ctx, cart.ID)
}
