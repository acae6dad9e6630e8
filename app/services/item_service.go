package services

import (
	"context"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/validate"
	"gorm.io/gorm"
)

// ItemInput carries the writable item fields.
type ItemInput struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"       validate:"nullable,url"`
	LargeImage  string `json:"largeImage"  validate:"nullable,url"`
	Price       int64  `json:"price"       validate:"gte=0"`
}

// ItemUpdate carries a partial update; nil fields are left unchanged.
type ItemUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
}

// ItemService owns catalogue CRUD and its ownership gates.
type ItemService struct {
	items *repositories.ItemRepository
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{items: repositories.NewItemRepository(db)}
}

// Find fetches one item.
func (s *ItemService) Find(id uint) (models.Item, error) {
	return s.items.FindByID(id)
}

// All lists the catalogue.
func (s *ItemService) All(page, limit int) ([]models.Item, orm.Pagination, error) {
	return s.items.All(page, limit)
}

// Create adds an item owned by the caller.
func (s *ItemService) Create(ctx context.Context, input ItemInput) (models.Item, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return models.Item{}, apperr.New(apperr.Unauthenticated, "You must be signed in to create an item")
	}

	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return models.Item{}, validationError(errs)
	}

	item := models.Item{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		LargeImage:  input.LargeImage,
		Price:       input.Price,
		UserID:      userID,
	}
	if err := s.items.Create(&item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Update modifies an item. Gated the same way as Delete: the owner, or a
// holder of ADMIN/ITEMUPDATE.
func (s *ItemService) Update(ctx context.Context, id uint, changes ItemUpdate) (models.Item, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.authorize(ctx, item.UserID, models.PermAdmin, models.PermItemUpdate); err != nil {
		return models.Item{}, err
	}

	if changes.Title != nil {
		item.Title = *changes.Title
	}
	if changes.Description != nil {
		item.Description = *changes.Description
	}
	if changes.Price != nil {
		if *changes.Price < 0 {
			return models.Item{}, apperr.New(apperr.ValidationFailed, "price cannot be negative")
		}
		item.Price = *changes.Price
	}

	if err := s.items.Update(&item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Delete removes an item: owner, or a holder of ADMIN/ITEMDELETE.
func (s *ItemService) Delete(ctx context.Context, id uint) (models.Item, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.authorize(ctx, item.UserID, models.PermAdmin, models.PermItemDelete); err != nil {
		return models.Item{}, err
	}

	if err := s.items.Delete(id); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// authorize passes when the caller owns the record or holds one of the
// elevated permissions.
func (s *ItemService) authorize(ctx context.Context, ownerID uint, elevated ...models.Permission) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return apperr.New(apperr.Unauthenticated, "You must be signed in")
	}
	if userID == ownerID {
		return nil
	}
	if granted(ctx, elevated...) {
		return nil
	}
	return apperr.New(apperr.Forbidden, "You don't have permission to do that")
}
