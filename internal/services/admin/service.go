// Package admin serves the back-office dashboard numbers.
package admin

import (
	"context"

	"khazina/internal/repositories"
)

// Stats is the dashboard snapshot: platform totals, not per-user views.
type Stats struct {
	UsersCount      int64   `json:"users_count"`
	OrdersCount     int64   `json:"orders_count"`
	ProductsCount   int64   `json:"products_count"`
	TotalRevenueQAR float64 `json:"total_revenue_qar"`
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	users    repositories.UserRepository
	orders   repositories.OrderRepository
	products repositories.ProductRepository
}

func NewService(
	users repositories.UserRepository,
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
) Service {
	if users == nil {
		panic("user repository is required")
	}
	if orders == nil {
		panic("order repository is required")
	}
	if products == nil {
		panic("product repository is required")
	}
	return &service{users: users, orders: orders, products: products}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.CountByRole(ctx, "user")
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		UsersCount:      users,
		OrdersCount:     orders,
		ProductsCount:   products,
		TotalRevenueQAR: revenue,
	}, nil
}
