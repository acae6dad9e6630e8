package services

import (
	"context"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"gorm.io/gorm"
)

// CartService manages the authenticated user's cart lines.
type CartService struct {
	carts *repositories.CartRepository
	items *repositories.ItemRepository
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		carts: repositories.NewCartRepository(db),
		items: repositories.NewItemRepository(db),
	}
}

// Lines returns the caller's cart.
func (s *CartService) Lines(ctx context.Context) ([]models.CartItem, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "You must be signed in")
	}
	return s.carts.LinesForUser(userID)
}

// AddToCart puts qty of an item in the caller's cart. A second add for the
// same item increments the existing line instead of creating another row.
func (s *CartService) AddToCart(ctx context.Context, itemID uint, qty int) (models.CartItem, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return models.CartItem{}, apperr.New(apperr.Unauthenticated, "You must be signed in to shop")
	}
	if qty < 1 {
		return models.CartItem{}, apperr.New(apperr.ValidationFailed, "quantity must be at least 1")
	}

	if _, err := s.items.FindByID(itemID); err != nil {
		return models.CartItem{}, err
	}

	return s.carts.AddOrIncrement(userID, itemID, qty)
}

// RemoveFromCart deletes one of the caller's cart lines. Lines belonging
// to other users read as NotFound.
func (s *CartService) RemoveFromCart(ctx context.Context, lineID uint) (models.CartItem, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return models.CartItem{}, apperr.New(apperr.Unauthenticated, "You must be signed in")
	}

	line, err := s.carts.FindLineOwnedBy(lineID, userID)
	if err != nil {
		return models.CartItem{}, err
	}

	if err := s.carts.DeleteLineOwnedBy(lineID, userID); err != nil {
		return models.CartItem{}, err
	}
	return line, nil
}
