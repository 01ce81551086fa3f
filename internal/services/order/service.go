// Package order implements checkout: it totals the cart, charges the card
// when payment is by card, decrements stock, records the order, and clears
// the cart.
package order

import (
	"context"
	"errors"
	"log/slog"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/services/cart"
	"khazina/internal/services/payment"
	"khazina/internal/utils"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("payment method must be card or cash_on_delivery")
	ErrCardTokenRequired    = errors.New("card token is required for card payments")
	ErrOutOfStock           = errors.New("product out of stock")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrOrderNotFound        = errors.New("order not found")
)

type CheckoutInput struct {
	PaymentMethod   string
	CardToken       string
	DeliveryAddress string
}

type Service interface {
	Checkout(ctx context.Context, userID uint, publicUserID string, input CheckoutInput) (*models.Order, error)
	List(ctx context.Context, userID uint) ([]models.Order, error)
	Get(ctx context.Context, userID uint, orderID string) (*models.Order, error)
}

type service struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	carts    cart.Service
	payments payment.Service
}

func NewService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	carts cart.Service,
	payments payment.Service,
) Service {
	if orders == nil {
		panic("order repository is required")
	}
	if products == nil {
		panic("product repository is required")
	}
	if carts == nil {
		panic("cart service is required")
	}
	if payments == nil {
		panic("payment service is required")
	}
	return &service{orders: orders, products: products, carts: carts, payments: payments}
}

func (s *service) Checkout(ctx context.Context, userID uint, publicUserID string, input CheckoutInput) (*models.Order, error) {
	if input.PaymentMethod != models.PaymentMethodCard && input.PaymentMethod != models.PaymentMethodCashOnDelivery {
		return nil, ErrInvalidPaymentMethod
	}
	if input.PaymentMethod == models.PaymentMethodCard && input.CardToken == "" {
		return nil, ErrCardTokenRequired
	}

	view, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 || view.TotalQAR <= 0 {
		return nil, ErrEmptyCart
	}

	// Reserve stock before taking payment. Gold-investment lines have no
	// stock to reserve. Any failure from here on must put the already
	// reserved lines back.
	var reserved []models.CartItem
	for _, item := range view.Items {
		if item.IsGoldInvestment {
			continue
		}
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.releaseStock(ctx, reserved)
			if errors.Is(err, repositories.ErrInsufficientStock) {
				return nil, ErrOutOfStock
			}
			return nil, err
		}
		reserved = append(reserved, item)
	}

	order := &models.Order{
		OrderID:         utils.NewID("order", 12),
		UserID:          userID,
		PublicUserID:    publicUserID,
		TotalQAR:        view.TotalQAR,
		Status:          models.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		DeliveryAddress: input.DeliveryAddress,
	}
	for _, item := range view.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			PriceQAR:  item.TotalPrice,
		})
	}

	if input.PaymentMethod == models.PaymentMethodCard {
		ref, err := s.payments.ChargeCard(input.CardToken, view.TotalQAR, "Order "+order.OrderID)
		if err != nil {
			s.releaseStock(ctx, reserved)
			return nil, ErrPaymentFailed
		}
		order.PaymentRef = ref
		order.Status = models.OrderStatusConfirmed
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseStock(ctx, reserved)
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		slog.Warn("failed to clear cart after checkout", "order_id", order.OrderID, "error", err)
	}

	slog.Info("order placed", "order_id", order.OrderID, "user_id", publicUserID,
		"total_qar", order.TotalQAR, "payment_method", order.PaymentMethod)
	return order, nil
}

// releaseStock undoes stock reservations after a failed checkout. A restore
// failure is logged, not returned; the checkout error itself wins.
func (s *service) releaseStock(ctx context.Context, reserved []models.CartItem) {
	for _, item := range reserved {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			slog.Error("failed to restore reserved stock",
				"product_id", item.ProductID, "quantity", item.Quantity, "error", err)
		}
	}
}

func (s *service) List(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID uint, orderID string) (*models.Order, error) {
	o, err := s.orders.GetByOrderID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}
